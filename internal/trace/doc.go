// Package trace - журнал событий прогона stylecheck.
//
// Ядро (lint, syntaxindex, diag) ничего не пишет; всё, что происходит вокруг
// него, driver отмечает span-ами: одна команда, стадии discover/load/lint,
// отдельные файлы.
//
//	stylecheck check --trace=- --trace-level=detail src/
//
// Уровни: off, error (только ошибки), phase (driver + pass), detail и debug
// (плюс события по файлам). Форматы вывода: text и ndjson.
//
// Tracer передаётся через context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, sp := trace.Start(ctx, trace.ScopePass, "lint")
//	defer sp.End("")
package trace
