// Package pagination разбивает выборку на страницы фиксированного размера.
//
// Номер страницы приходит из query-строки как есть. Нечисловое или пустое
// значение даёт первую страницу, номер за пределами диапазона — последнюю.
// Ошибка наружу не отдаётся.
package pagination

import (
	"strconv"
	"strings"
)

type Page struct {
	Number   int
	NumPages int
	Count    int
	PerPage  int
}

// New вычисляет страницу для count элементов по perPage на страницу.
// Пустая выборка — это одна пустая первая страница.
func New(count, perPage int, raw string) Page {
	if perPage <= 0 {
		perPage = 1
	}
	numPages := 1
	if count > 0 {
		numPages = (count + perPage - 1) / perPage
	}

	number, err := strconv.Atoi(strings.TrimSpace(raw))
	switch {
	case err != nil:
		number = 1
	case number < 1 || number > numPages:
		number = numPages
	}

	return Page{Number: number, NumPages: numPages, Count: count, PerPage: perPage}
}

func (p Page) Offset() int { return (p.Number - 1) * p.PerPage }

func (p Page) Limit() int { return p.PerPage }

func (p Page) HasNext() bool { return p.Number < p.NumPages }

func (p Page) HasPrevious() bool { return p.Number > 1 }

func (p Page) NextNumber() int { return p.Number + 1 }

func (p Page) PreviousNumber() int { return p.Number - 1 }
