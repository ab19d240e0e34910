
// Package fuzztests houses Go fuzz harnesses for the checking pipeline
// (normalize -> URL blanking -> tokenizer -> checkers). They guard against
// panics and against issues whose spans disagree with the text.
//
// Назначение: запускать fuzz-обработчики на произвольном тексте и проверять
// инварианты находок через internal/testkit.
//
// Не делает: загрузку словарей, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/sanitize, internal/lexer,
// internal/check, internal/testkit.

package fuzztests
