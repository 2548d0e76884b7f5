package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_CategoryFieldWinsOverName(t *testing.T) {
	tests := []struct {
		category string
		name     string
		expected View
		label    string
	}{
		{"Trekking", "Char Dham Yatra", ViewTreks, "Category trek beats spiritual name"},
		{"Adventure Tours", "Anything", ViewTrips, "tour keyword in category"},
		{"Expeditions", "Beach Trip", ViewExpeditions, "expedit keyword"},
		{"Spiritual Journeys", "Random", ViewSpiritual, "spiritual keyword"},
		{"Pilgrimage", "Random", ViewSpiritual, "pilgrim keyword"},
	}

	for _, tc := range tests {
		t.Run(tc.label, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.category, tc.name))
		})
	}
}

func TestClassify_CategoryRuleOrder(t *testing.T) {
	// "Adventure Tours" contains both "tour" (trips) and "adventur"
	// (expeditions); the trips rule sits earlier so it wins.
	assert.Equal(t, ViewTrips, Classify("Adventure Tours", ""))
}

func TestClassify_NameFallback(t *testing.T) {
	tests := []struct {
		name     string
		expected View
	}{
		{"Roopkund Trek", ViewTreks},
		{"Valley of Flowers", ViewTreks},
		{"Everest Summit Climb", ViewTreks},
		{"Goa Beach Trip", ViewTrips},
		{"Jaipur City Tour", ViewTrips},
		{"Honeymoon Package", ViewTrips},
		{"Ganga Rafting Expedition", ViewExpeditions},
		{"Rishikesh Camping", ViewExpeditions},
		{"Kedarnath Darshan", ViewSpiritual},
		{"Badrinath Visit", ViewSpiritual},
		{"Char Dham Yatra", ViewSpiritual},
		{"Mystery Outing", ViewOther},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify("", tc.name))
		})
	}
}

func TestClassify_EmptyInputs(t *testing.T) {
	assert.Equal(t, ViewOther, Classify("", ""))
	assert.Equal(t, ViewOther, Classify("   ", "   "))
}

func TestViewIncludes(t *testing.T) {
	assert.True(t, ViewTreks.Includes(ViewTreks))
	assert.False(t, ViewTreks.Includes(ViewOther))

	// The Trips view also shows unclassified packages
	assert.True(t, ViewTrips.Includes(ViewTrips))
	assert.True(t, ViewTrips.Includes(ViewOther))
	assert.False(t, ViewSpiritual.Includes(ViewOther))
}
