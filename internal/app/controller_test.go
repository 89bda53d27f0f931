package app

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/flamday/internal/countdown"
	"github.com/julianstephens/flamday/internal/geo"
	"github.com/julianstephens/flamday/internal/itinerary"
	"github.com/julianstephens/flamday/internal/models"
)

type fakeStore struct {
	saves    [][]models.Activity
	resets   int
	saveErr  error
	resetErr error
}

func (f *fakeStore) Save(list []models.Activity) error {
	f.saves = append(f.saves, itinerary.Clone(list))
	return f.saveErr
}

func (f *fakeStore) Reset() error {
	f.resets++
	return f.resetErr
}

var oslo = time.FixedZone("CEST", 2*60*60)

func newController(t *testing.T, store Persister) *Controller {
	t.Helper()
	cfg := Config{
		Departure: "17:30",
		Onboard:   "17:00",
		Anchor:    time.Date(2026, 5, 14, 15, 0, 0, 0, oslo),
		Location:  oslo,
	}
	c, err := New(itinerary.Default(), itinerary.Default(), store, cfg)
	require.NoError(t, err)
	return c
}

func TestNewInitialState(t *testing.T) {
	c := newController(t, &fakeStore{})
	st := c.State()

	assert.Equal(t, ViewTimeline, st.View)
	assert.Nil(t, st.Location)
	assert.Nil(t, st.Focus)
	assert.Len(t, st.Itinerary, 7)
	assert.Equal(t, "2h 30m 0s", st.Countdown)
	assert.Equal(t, time.Date(2026, 5, 14, 17, 30, 0, 0, oslo), c.Departure())
	assert.Equal(t, time.Date(2026, 5, 14, 17, 0, 0, 0, oslo), c.Onboard())
}

func TestNewRejectsInvalidTimes(t *testing.T) {
	_, err := New(nil, nil, nil, Config{Departure: "25:00", Onboard: "17:00", Anchor: time.Now()})
	assert.Error(t, err)

	_, err = New(nil, nil, nil, Config{Departure: "17:30", Onboard: "soon", Anchor: time.Now()})
	assert.Error(t, err)
}

func TestToggleCompletionPersists(t *testing.T) {
	store := &fakeStore{}
	c := newController(t, store)

	require.NoError(t, c.ToggleCompletion("3"))

	act, ok := itinerary.Find(c.State().Itinerary, "3")
	require.True(t, ok)
	assert.True(t, act.Completed)
	require.Len(t, store.saves, 1)
	assert.Len(t, store.saves[0], 7)
	assert.True(t, store.saves[0][2].Completed)

	require.NoError(t, c.ToggleCompletion("3"))
	act, _ = itinerary.Find(c.State().Itinerary, "3")
	assert.False(t, act.Completed)
	assert.Len(t, store.saves, 2)
}

func TestToggleCompletionUnknownID(t *testing.T) {
	store := &fakeStore{}
	c := newController(t, store)

	err := c.ToggleCompletion("42")
	assert.ErrorIs(t, err, itinerary.ErrUnknownActivity)
	assert.Empty(t, store.saves)
}

func TestToggleCompletionKeepsStateOnSaveFailure(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("disk full")}
	c := newController(t, store)

	err := c.ToggleCompletion("1")
	assert.Error(t, err)

	act, _ := itinerary.Find(c.State().Itinerary, "1")
	assert.True(t, act.Completed)
}

func TestToggleCompletionWithoutStore(t *testing.T) {
	c := newController(t, nil)
	require.NoError(t, c.ToggleCompletion("2"))
	next, ok := c.NextActivity()
	require.True(t, ok)
	assert.Equal(t, "1", next.ID)
}

func TestResetProgress(t *testing.T) {
	store := &fakeStore{}
	c := newController(t, store)
	require.NoError(t, c.ToggleCompletion("1"))
	require.NoError(t, c.ToggleCompletion("2"))

	require.NoError(t, c.ResetProgress())
	assert.Equal(t, 1, store.resets)
	done, total := itinerary.Progress(c.State().Itinerary)
	assert.Equal(t, 0, done)
	assert.Equal(t, 7, total)
}

func TestLocateNavigatesToMap(t *testing.T) {
	c := newController(t, nil)
	target := itinerary.StegasteinViewpoint

	c.Locate(target)

	st := c.State()
	assert.Equal(t, ViewMap, st.View)
	require.NotNil(t, st.Focus)
	assert.Equal(t, target, *st.Focus)
}

func TestNavigate(t *testing.T) {
	c := newController(t, nil)
	c.Locate(itinerary.FlamDock)

	c.Navigate(ViewBudget)
	assert.Equal(t, ViewBudget, c.State().View)
	assert.NotNil(t, c.State().Focus, "navigation keeps the focused coordinate")

	c.Navigate(View(99))
	assert.Equal(t, ViewBudget, c.State().View)
}

func TestSnapshotIsIndependent(t *testing.T) {
	c := newController(t, nil)
	loc := itinerary.FlamDock
	c.SetLocation(&loc)
	loc.Lat = 0

	st := c.State()
	st.Itinerary[0].Completed = true
	st.Location.Lat = 1

	fresh := c.State()
	assert.False(t, fresh.Itinerary[0].Completed)
	assert.Equal(t, itinerary.FlamDock, *fresh.Location)
}

func TestSetLocationReplaces(t *testing.T) {
	c := newController(t, nil)
	first := itinerary.FlamDock
	second := itinerary.Myrdal

	c.SetLocation(&first)
	c.SetLocation(&second)
	assert.Equal(t, itinerary.Myrdal, *c.State().Location)

	c.SetLocation(nil)
	assert.Nil(t, c.State().Location)
}

func TestTick(t *testing.T) {
	c := newController(t, nil)

	c.Tick(time.Date(2026, 5, 14, 17, 29, 59, 0, oslo))
	assert.Equal(t, "0h 0m 1s", c.State().Countdown)

	c.Tick(time.Date(2026, 5, 14, 17, 30, 1, 0, oslo))
	assert.Equal(t, countdown.DepartingMessage, c.State().Countdown)
}

func TestDistanceToNext(t *testing.T) {
	c := newController(t, nil)

	_, ok := c.DistanceToNext()
	assert.False(t, ok, "no distance without a location")

	here := itinerary.FlamDock
	c.SetLocation(&here)

	d, ok := c.DistanceToNext()
	require.True(t, ok)
	assert.Equal(t, 0.0, d)

	require.NoError(t, c.ToggleCompletion("1"))
	d, ok = c.DistanceToNext()
	require.True(t, ok)
	assert.Equal(t, geo.RoundedDistance(itinerary.FlamDock, itinerary.FlamStation), d)
	assert.Greater(t, d, 0.0)

	for _, id := range []string{"2", "3", "4", "5", "6", "7"} {
		require.NoError(t, c.ToggleCompletion(id))
	}
	_, ok = c.DistanceToNext()
	assert.False(t, ok, "no distance once every activity is done")
}

func TestBudget(t *testing.T) {
	c := newController(t, nil)
	require.NoError(t, c.ToggleCompletion("2"))

	b := c.Budget()
	assert.Equal(t, 2760, b.Total.NOK)
	assert.Equal(t, 750, b.Spent.NOK)
	assert.Equal(t, 2010, b.Pending.NOK)
}

func TestViewCycling(t *testing.T) {
	assert.Equal(t, ViewMap, ViewTimeline.Next())
	assert.Equal(t, ViewTimeline, ViewGuide.Next())
	assert.Equal(t, ViewGuide, ViewTimeline.Prev())
	assert.Equal(t, "Itinerario", ViewTimeline.String())
	assert.Equal(t, "Mapa", ViewMap.String())
	assert.Equal(t, "Gastos", ViewBudget.String())
	assert.Equal(t, "Guía", ViewGuide.String())
	assert.Len(t, Views(), 4)
}
