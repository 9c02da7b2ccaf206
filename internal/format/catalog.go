package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// Message keys are the English texts; other languages are looked up in the catalog.
var russian = map[string]string{
	"Awaiting payment": "Ожидает оплаты",
	"Paid":             "Оплачено",
	"In progress":      "В процессе",
	"Completed":        "Завершено",
	"Cancelled":        "Отменено",

	"Order created":          "Новый заказ",
	"Order paid":             "Заказ оплачен",
	"Payment proof received": "Получено подтверждение оплаты",
	"Status changed":         "Смена статуса",
	"Tester assigned":        "Назначен тестер",
	"Tester unassigned":      "Тестер снят",
	"Report uploaded":        "Загружен отчёт",
	"Order completed":        "Заказ завершён",
	"Order cancelled":        "Заказ отменён",
	"Note added":             "Добавлена заметка",
	"Tester created":         "Добавлен тестер",
	"Admin action":           "Действие администратора",

	"Total revenue":           "Общий доход",
	"Month revenue":           "Доход за месяц",
	"Average check":           "Средний чек",
	"Client LTV":              "LTV клиента",
	"Awaiting":                "Ожидают оплаты",
	"Total orders":            "Всего заказов",
	"Total clients":           "Всего клиентов",
	"New today":               "Новых за сегодня",
	"Repeat purchases":        "Повторные покупки",
	"Start to pay conversion": "Конверсия старт→оплата",
	"Abandoned orders":        "Незавершённые заказы",
	"Average time to pay":     "Среднее время до оплаты",
	"Top GEO":                 "Популярный GEO",
	"Top package":             "Популярный пакет",

	"%d min":             "%d мин",
	"%s of clients":      "%s клиентов",
	"%s of orders":       "%s заказов",
	"vs previous period": "vs пред. период",
}

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range russian {
		if err := b.SetString(language.Russian, key, msg); err != nil {
			panic("format: bad catalog entry " + key + ": " + err.Error())
		}
	}
	return b
}
