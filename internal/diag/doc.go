// Package diag описывает стилевые находки и способы их сбора.
//
// Каждая находка - это Diagnostic с кодом S001..S012, номером строки и
// сообщением. Сообщение строится из типизированных Args через Code.Render:
// подстановка позиционная, повторной подстановки внутри имени не бывает.
//
// Правила отдают диагностики через интерфейс Reporter; BagReporter складывает
// их в Bag с необязательным лимитом. Bag.Sort упорядочивает по (path, line,
// code) стабильно, и для одного файла это совпадает с порядком эмиссии.
//
// FormatShort печатает каноническую форму:
//
//	<path>: Line <n>: <CODE> <message>
package diag
