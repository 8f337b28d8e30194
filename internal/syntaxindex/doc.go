// Package syntaxindex builds the per-line view of declarations that the
// syntax rules consume.
//
// Индекс строится один раз полным обходом дерева:
//   - Functions: строка `def` → имя, имена параметров, значения по умолчанию;
//   - Variables: строка → имя для присваиваний вида `name = value`.
//
// Для одной строки хранится не более одной функции и одной переменной;
// при коллизии побеждает последняя запись в порядке обхода.
package syntaxindex
