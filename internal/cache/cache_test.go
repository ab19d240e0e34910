package cache

import (
	"context"
	"reflect"
	"testing"

	"lektor/internal/check"
)

func TestKeyForDependsOnInputs(t *testing.T) {
	opts := check.Options{Commas: true}
	base := KeyFor("s Markom", opts, "")
	if KeyFor("s Markom", opts, "") != base {
		t.Fatal("key is not stable")
	}
	if KeyFor("z Markom", opts, "") == base {
		t.Error("text not hashed")
	}
	if KeyFor("s Markom", check.Options{}, "") == base {
		t.Error("options not hashed")
	}
	if KeyFor("s Markom", opts, "abc") == base {
		t.Error("lexicon fingerprint not hashed")
	}
	if KeyFor("s Markom", check.Options{Commas: true, Parallel: true}, "") != base {
		t.Error("parallelism must not change the key")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	c, err := Open("lektor", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	text := "Pozdravljeni ,lep dan s Markom"
	res, err := check.NewEngine(check.Options{}, nil).Run(context.Background(), text)
	if err != nil {
		t.Fatal(err)
	}
	key := KeyFor(text, check.Options{}, "")

	if _, ok, err := c.Get(key); ok || err != nil {
		t.Fatalf("empty cache hit: %v %v", ok, err)
	}
	if err := c.Put(key, FromResult(res)); err != nil {
		t.Fatal(err)
	}
	p, ok, err := c.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if got := p.Result(0); !reflect.DeepEqual(got.Issues, res.Issues) || got.GrammarCount != res.GrammarCount {
		t.Errorf("round trip changed the result:\n%+v\n%+v", got, res)
	}

	if err := c.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(key); ok {
		t.Error("entry survived DropAll")
	}
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *DiskCache
	if err := c.Put(Key{}, &Payload{}); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(Key{}); ok || err != nil {
		t.Fatalf("nil cache hit: %v %v", ok, err)
	}
}
