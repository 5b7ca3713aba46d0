// Package reset решает, пора ли сбрасывать выполнение задачи.
// Чистые функции без состояния, обе даты должны быть посчитаны
// вызывающей стороной в одном часовом поясе.
package reset

import (
	"github.com/BuzzLyutic/household-api/internal/model"
)

// Due возвращает true, если задача пересекла границу своего периода
// и её выполнение нужно сбросить. Дата сброса в будущем (перевод часов
// назад) никогда не срабатывает - это не ошибка, задача просто не due.
func Due(freq model.Frequency, lastReset, today model.Date) bool {
	if lastReset.After(today) {
		return false
	}

	switch freq {
	case model.FrequencyDaily:
		return today.After(lastReset)
	case model.FrequencyWeekly:
		return today.DaysSince(lastReset) >= 7
	case model.FrequencyMonthly:
		// день месяца не важен: сброс 31-го и проверка 1-го числа
		// следующего месяца - это уже новый период
		return today.Month != lastReset.Month || today.Year != lastReset.Year
	}

	// one_time и всё неизвестное не сбрасывается никогда
	return false
}
