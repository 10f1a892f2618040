package slots

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chairtime/booking-flow/internal/schedapi"
)

func TestLabelAllHours(t *testing.T) {
	for h := 0; h <= 23; h++ {
		want := fmt.Sprintf("%02d:00", h)
		assert.Equal(t, want, Label(h))
	}
}

func TestClassifyPartition(t *testing.T) {
	in := []schedapi.AvailabilitySlot{
		{Hour: 14, Available: false},
		{Hour: 9, Available: true},
		{Hour: 12, Available: true},
		{Hour: 0, Available: false},
		{Hour: 23, Available: true},
		{Hour: 11, Available: true},
	}
	day := Classify(in)

	assert.Len(t, day.Morning, 3)
	assert.Len(t, day.Afternoon, 3)
	for _, s := range day.Morning {
		assert.Less(t, s.Hour, 12)
	}
	for _, s := range day.Afternoon {
		assert.GreaterOrEqual(t, s.Hour, 12)
	}
}

func TestClassifySortedRegardlessOfInputOrder(t *testing.T) {
	base := []schedapi.AvailabilitySlot{
		{Hour: 8}, {Hour: 9}, {Hour: 10}, {Hour: 13}, {Hour: 15}, {Hour: 17},
	}
	for trial := 0; trial < 20; trial++ {
		in := make([]schedapi.AvailabilitySlot, len(base))
		copy(in, base)
		rand.Shuffle(len(in), func(i, j int) { in[i], in[j] = in[j], in[i] })

		day := Classify(in)
		for i := 1; i < len(day.Morning); i++ {
			assert.Less(t, day.Morning[i-1].Hour, day.Morning[i].Hour)
		}
		for i := 1; i < len(day.Afternoon); i++ {
			assert.Less(t, day.Afternoon[i-1].Hour, day.Afternoon[i].Hour)
		}
	}
}

func TestClassifyKeepsAvailabilityAndLabels(t *testing.T) {
	day := Classify([]schedapi.AvailabilitySlot{
		{Hour: 9, Available: true},
		{Hour: 14, Available: false},
	})
	assert.Equal(t, []DisplaySlot{{Hour: 9, Available: true, Label: "09:00"}}, day.Morning)
	assert.Equal(t, []DisplaySlot{{Hour: 14, Available: false, Label: "14:00"}}, day.Afternoon)
}

func TestClassifyDoesNotMutateInput(t *testing.T) {
	in := []schedapi.AvailabilitySlot{{Hour: 14}, {Hour: 9}}
	Classify(in)
	assert.Equal(t, 14, in[0].Hour)
	assert.Equal(t, 9, in[1].Hour)
}

func TestClassifyEmpty(t *testing.T) {
	day := Classify(nil)
	assert.Empty(t, day.Morning)
	assert.Empty(t, day.Afternoon)
}
