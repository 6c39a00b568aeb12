package common

import (
	"github.com/logrusorgru/aurora"
)

func AlertColor(str string) string {
	return aurora.Red(str).String()
}

func InfoColor(str string) string {
	return aurora.Green(str).String()
}

func StatusWithColor(status string) string {
	if status == "Success" {
		return InfoColor(status)
	}
	return AlertColor(status)
}
