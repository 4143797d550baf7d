// Package slots описывает сетку бронирования: часовые слоты с 09:00 до 19:00 включительно.
package slots

import (
	"fmt"
	"slices"
	"time"
)

// DateLayout — формат даты записи.
const DateLayout = "2006-01-02"

const (
	firstHour = 9
	lastHour  = 19
)

// All возвращает все метки слотов рабочего дня в порядке возрастания.
func All() []string {
	res := make([]string, 0, lastHour-firstHour+1)
	for hour := firstHour; hour <= lastHour; hour++ {
		res = append(res, fmt.Sprintf("%02d:00", hour))
	}
	return res
}

// Available возвращает слоты рабочего дня за вычетом занятых, сохраняя порядок.
func Available(taken []string) []string {
	res := make([]string, 0, lastHour-firstHour+1)
	for _, slot := range All() {
		if !slices.Contains(taken, slot) {
			res = append(res, slot)
		}
	}
	return res
}

// IsDate сообщает, является ли строка календарной датой в формате 2006-01-02.
func IsDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// IsLabel сообщает, является ли строка меткой одного из слотов рабочего дня.
func IsLabel(s string) bool {
	return slices.Contains(All(), s)
}
