// Package ast holds the syntax tree of a Python module.
//
// Узлы живут в аренах (Builder) и адресуются типизированными ID; 0 означает
// «нет узла». Каждая инструкция и выражение помнит 1-based строку начала.
// Дерево покрывает то подмножество Python, которое нужно для индекса
// объявлений: инструкции целиком, выражения - достаточно точно, чтобы
// классифицировать значения по умолчанию.
package ast
