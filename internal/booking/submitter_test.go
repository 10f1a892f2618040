package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chairtime/booking-flow/internal/schedapi"
)

type fakeCreator struct {
	err      error
	calls    int
	lastID   string
	lastAt   time.Time
	blockCtx bool
}

func (f *fakeCreator) CreateAppointment(ctx context.Context, providerID string, at time.Time) (*schedapi.Appointment, error) {
	f.calls++
	f.lastID = providerID
	f.lastAt = at
	if f.blockCtx {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &schedapi.Appointment{ID: "apt-1", ProviderID: providerID, Date: at}, nil
}

func TestSubmitSuccess(t *testing.T) {
	api := &fakeCreator{}
	sub := NewSubmitter(api, nil)

	sel := NewSelection("p1", time.Date(2026, 8, 30, 17, 45, 12, 0, time.Local))
	sel = Apply(sel, SelectHour{Hour: 9})

	conf, err := sub.Submit(context.Background(), sel)
	require.NoError(t, err)
	require.NotNil(t, conf)

	assert.Equal(t, 9, conf.Time.Hour())
	assert.Equal(t, 0, conf.Time.Minute())
	assert.Equal(t, 0, conf.Time.Second())
	assert.Equal(t, 30, conf.Time.Day())
	assert.Equal(t, time.August, conf.Time.Month())
	assert.Equal(t, 2026, conf.Time.Year())

	assert.Equal(t, 1, api.calls)
	assert.Equal(t, "p1", api.lastID)
	assert.Equal(t, conf.Time, api.lastAt, "confirmation carries the exact submitted instant")
}

func TestSubmitWithoutHourIsContractViolation(t *testing.T) {
	api := &fakeCreator{}
	sub := NewSubmitter(api, nil)

	_, err := sub.Submit(context.Background(), NewSelection("p1", time.Now()))
	assert.ErrorIs(t, err, ErrHourNotChosen)
	assert.Zero(t, api.calls, "no write may be attempted without an hour")
}

func TestSubmitFailureIsSubmissionErrorWithoutRetry(t *testing.T) {
	api := &fakeCreator{err: errors.New("slot taken")}
	sub := NewSubmitter(api, nil)

	sel := Apply(NewSelection("p1", time.Now()), SelectHour{Hour: 14})
	conf, err := sub.Submit(context.Background(), sel)
	assert.Nil(t, conf)

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, 1, api.calls, "exactly one write call, no retry")
}

func TestSubmitTimeout(t *testing.T) {
	api := &fakeCreator{blockCtx: true}
	sub := NewSubmitter(api, nil, WithSubmitTimeout(20*time.Millisecond))

	sel := Apply(NewSelection("p1", time.Now()), SelectHour{Hour: 10})
	_, err := sub.Submit(context.Background(), sel)

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestConfirmationFormatLong(t *testing.T) {
	c := Confirmation{Time: time.Date(2026, 8, 31, 9, 0, 0, 0, time.Local)}
	assert.Equal(t, "Monday, August 31 2026 at 09:00", c.FormatLong())
}
