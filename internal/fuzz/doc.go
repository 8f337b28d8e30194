// Package fuzztests houses Go fuzz harnesses that exercise the checking
// pipeline (source -> lexer -> parser -> lint) on arbitrary bytes. Its goal is
// to smoke test robustness and guard against panics or hangs on hostile input.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер, парсер и
// правила, проверяя инварианты span-ов на каждом успешно разобранном модуле.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/lint,
// internal/testkit.

package fuzztests
