package ergdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tormoder/fit"
)

const sampleExport = `{
  "data": {
    "cardioLogId": "9f1c",
    "name": " 5K Steady ",
    "date": "05/03/2024 07:15",
    "target": "5000m",
    "data": [
      {"property": "Move", "rawValue": 1},
      {"property": "Duration", "rawValue": "20", "uM": "min"},
      {"property": "Distance", "rawValue": 4.9, "uM": "km"}
    ],
    "analitics": {
      "descriptor": [
        {"i": 0, "pr": {"name": "Distance", "um": "m"}},
        {"i": 1, "pr": {"name": "IsoReps", "um": "Number"}},
        {"i": 2, "pr": {"name": "Level", "um": "Number"}}
      ],
      "samples": [
        {"t": 0, "vs": [0, 0, 5]},
        {"t": 600, "vs": [2500, 310, 7]},
        {"t": 1200, "vs": [5000, 620.4, null]}
      ]
    }
  }
}`

func TestParseJSON(t *testing.T) {
	w, err := ParseJSON([]byte(sampleExport))
	require.NoError(t, err)

	assert.Equal(t, "9f1c", w.CardioLogID)
	assert.Equal(t, DefaultEquipment, w.Equipment)
	assert.Equal(t, "5K Steady", w.Name)
	assert.Equal(t, "5000m", w.Target)
	assert.Equal(t, "2024-03-05", w.Date.Format("2006-01-02"))

	require.NotNil(t, w.DurationSeconds)
	assert.Equal(t, 1200.0, *w.DurationSeconds)
	require.NotNil(t, w.DistanceMeters)
	assert.Equal(t, 5000.0, *w.DistanceMeters, "sampled distance wins over the summary entry")
	require.NotNil(t, w.IsoReps)
	assert.Equal(t, int64(620), *w.IsoReps)
	require.NotNil(t, w.Level)
	// 5 for the first 600s, then 7 until the end.
	assert.InDelta(t, 6.0, *w.Level, 1e-9)
}

func TestParseJSON_SummaryDistanceFallback(t *testing.T) {
	w, err := ParseJSON([]byte(`{"data": {
		"cardioLogId": 12345,
		"date": "31/12/2023",
		"equipment": "bike",
		"data": [
			{"property": "Duration", "rawValue": 90000, "uM": "ms"},
			{"property": "Total Distance", "rawValue": 1, "uM": "mi"}
		]
	}}`))
	require.NoError(t, err)

	assert.Equal(t, "12345", w.CardioLogID)
	assert.Equal(t, "BIKE", w.Equipment)
	require.NotNil(t, w.DurationSeconds)
	assert.Equal(t, 90.0, *w.DurationSeconds)
	require.NotNil(t, w.DistanceMeters)
	assert.InDelta(t, 1609.34, *w.DistanceMeters, 1e-9)
	assert.Nil(t, w.IsoReps)
	assert.Nil(t, w.Level)
}

func TestParseJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, err error)
	}{
		{
			name:  "not json",
			input: "nope",
			check: func(t *testing.T, err error) { assert.ErrorContains(t, err, "decode export") },
		},
		{
			name:  "no data object",
			input: `{"other": {}}`,
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrMissingData) },
		},
		{
			name:  "missing cardio log id",
			input: `{"data": {"date": "01/01/2024"}}`,
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrMissingCardioLogID) },
		},
		{
			name:  "iso date",
			input: `{"data": {"cardioLogId": "x", "date": "2024-01-01"}}`,
			check: func(t *testing.T, err error) {
				var de *DateError
				require.ErrorAs(t, err, &de)
				assert.Equal(t, "2024-01-01", de.Value)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ParseJSON([]byte(tt.input))
			assert.Nil(t, w)
			tt.check(t, err)
		})
	}
}

func TestParseJSON_NoDurationMeansNoLevel(t *testing.T) {
	w, err := ParseJSON([]byte(`{"data": {"cardioLogId": "a", "date": "01/02/2024",
		"analitics": {"descriptor": [{"i": 0, "pr": {"name": "Level", "um": "Number"}}],
		"samples": [{"t": 0, "vs": [4]}]}}}`))
	require.NoError(t, err)
	assert.Nil(t, w.DurationSeconds)
	assert.Nil(t, w.Level)
}

func TestParseFIT_RejectsGarbage(t *testing.T) {
	_, err := ParseFIT([]byte("definitely not a fit file"))
	assert.ErrorContains(t, err, "decode fit")
}

func TestDescribeSport(t *testing.T) {
	equipment, name := describeSport(fit.SportRowing)
	assert.Equal(t, "ROWER", equipment)
	assert.Equal(t, "Rowing", name)

	equipment, _ = describeSport(fit.SportCycling)
	assert.Equal(t, "BIKE", equipment)

	equipment, _ = describeSport(fit.SportSwimming)
	assert.Equal(t, DefaultEquipment, equipment)
}
