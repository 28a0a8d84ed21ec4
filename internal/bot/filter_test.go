package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwearFilterPredict(t *testing.T) {
	f := NewSwearFilter([]string{"дурак", "болван"})

	assert.Equal(t, 1, f.Predict("ну ты и дурак"))
	assert.Equal(t, 1, f.Predict("Дурак!"))
	assert.Equal(t, 0, f.Predict("подскажите про отпуск"))
	assert.Equal(t, 0, f.Predict(""))
}

func TestSwearFilterPredictProba(t *testing.T) {
	f := NewSwearFilter([]string{"дурак"})

	assert.InDelta(t, 0.25, f.PredictProba("ну ты и дурак"), 0.001)
	assert.Equal(t, 0.0, f.PredictProba("обычный вопрос про зарплату"))
	assert.Equal(t, 0.0, f.PredictProba(""))
	assert.Equal(t, 1.0, f.PredictProba("дурак"))
}

func TestSwearFilterNormalizesDictionary(t *testing.T) {
	f := NewSwearFilter([]string{"  ДУРАК ", ""})

	assert.Equal(t, 1, f.Predict("дурак"))
}
