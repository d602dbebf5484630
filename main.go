// Helios forecasts sales, predicts customer churn and turns both into
// short business recommendations.
package main

import (
	"github.com/vanshpreet5618/Helios/cmd"
	"github.com/vanshpreet5618/Helios/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Error", err)
	}
}
