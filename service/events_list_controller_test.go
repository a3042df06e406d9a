package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evently/api"
	"evently/models"
	"evently/models/sorting"
)

func pagedEvents(perPage int) func(int) ([]models.Event, error) {
	return func(page int) ([]models.Event, error) {
		events := make([]models.Event, perPage)
		for i := range events {
			events[i] = sampleEvent(fmt.Sprintf("p%d-%d", page, i))
		}
		return events, nil
	}
}

func ids(events []models.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func TestEventsListController_InitialState(t *testing.T) {
	c := NewEventsListController(&fakeEventsAPI{pages: pagedEvents(1)}, "pl", 20)

	state := c.State()
	assert.Empty(t, state.Events)
	assert.NotNil(t, state.Events)
	assert.False(t, state.IsLoading)
	assert.Equal(t, 0, state.CurrentPage)
	assert.Equal(t, sorting.Default, state.SortStrategy)
	assert.Equal(t, "PL", state.Country)
	assert.Equal(t, DisplayModeList, state.DisplayMode)
}

func TestEventsListController_LoadFirst(t *testing.T) {
	fake := &fakeEventsAPI{pages: pagedEvents(2)}
	c := NewEventsListController(fake, "PL", 2)

	c.LoadFirst(context.Background())

	state := c.State()
	assert.Equal(t, []string{"p0-0", "p0-1"}, ids(state.Events))
	assert.Equal(t, 0, state.CurrentPage)
	assert.False(t, state.IsLoading)
	require.Len(t, fake.Calls(), 1)
	assert.Equal(t, fetchCall{country: "PL", page: 0, size: 2, strategy: sorting.Default}, fake.Calls()[0])
}

func TestEventsListController_LoadMoreAppendsInOrder(t *testing.T) {
	fake := &fakeEventsAPI{pages: pagedEvents(3)}
	c := NewEventsListController(fake, "PL", 3)

	c.LoadFirst(context.Background())
	c.LoadMore(context.Background())

	state := c.State()
	assert.Equal(t, []string{"p0-0", "p0-1", "p0-2", "p1-0", "p1-1", "p1-2"}, ids(state.Events))
	assert.Equal(t, 1, state.CurrentPage)
	assert.Equal(t, 1, fake.Calls()[1].page)
}

func TestEventsListController_DuplicatesAreKept(t *testing.T) {
	same := func(int) ([]models.Event, error) {
		return []models.Event{sampleEvent("dup"), sampleEvent("dup")}, nil
	}
	c := NewEventsListController(&fakeEventsAPI{pages: same}, "PL", 2)

	c.LoadFirst(context.Background())
	assert.Len(t, c.State().Events, 2)

	c.LoadMore(context.Background())
	assert.Len(t, c.State().Events, 4)
}

func TestEventsListController_FailedLoadFirstLeavesListEmpty(t *testing.T) {
	fail := func(int) ([]models.Event, error) {
		return nil, fmt.Errorf("%w: no key", api.ErrMissingAPIKey)
	}
	c := NewEventsListController(&fakeEventsAPI{pages: fail}, "PL", 2)

	c.LoadFirst(context.Background())

	state := c.State()
	assert.Empty(t, state.Events)
	assert.Equal(t, api.Message(api.ErrMissingAPIKey), state.Error)
	assert.False(t, state.IsLoading)
}

func TestEventsListController_FailedLoadMoreKeepsPriorPages(t *testing.T) {
	pages := pagedEvents(2)
	failing := false
	fake := &fakeEventsAPI{pages: func(page int) ([]models.Event, error) {
		if failing {
			return nil, &api.StatusError{StatusCode: 503, Status: "503 Service Unavailable"}
		}
		return pages(page)
	}}
	c := NewEventsListController(fake, "PL", 2)

	c.LoadFirst(context.Background())
	before := c.State().Events

	failing = true
	c.LoadMore(context.Background())

	state := c.State()
	assert.Equal(t, before, state.Events)
	assert.NotEmpty(t, state.Error)
	assert.Equal(t, 0, state.CurrentPage)
	assert.False(t, state.IsLoading)

	// the same page is requested again on the next attempt
	failing = false
	c.LoadMore(context.Background())
	assert.Len(t, c.State().Events, 4)
	calls := fake.Calls()
	assert.Equal(t, 1, calls[1].page)
	assert.Equal(t, 1, calls[2].page)
	assert.Empty(t, c.State().Error)
}

func TestEventsListController_LoadFirstWhileLoadingIsNoop(t *testing.T) {
	fake := newGatedEventsAPI(pagedEvents(2))
	c := NewEventsListController(fake, "PL", 2)

	done := make(chan struct{})
	go func() {
		c.LoadFirst(context.Background())
		close(done)
	}()
	<-fake.entered

	during := c.State()
	require.True(t, during.IsLoading)
	c.LoadFirst(context.Background())
	c.LoadMore(context.Background())

	after := c.State()
	assert.Equal(t, during.Events, after.Events)
	assert.Equal(t, during.CurrentPage, after.CurrentPage)
	assert.Len(t, fake.Calls(), 1)

	close(fake.gate)
	<-done
	assert.Len(t, c.State().Events, 2)
}

func TestEventsListController_ChooseSameStrategyIsNoop(t *testing.T) {
	fake := &fakeEventsAPI{pages: pagedEvents(2)}
	c := NewEventsListController(fake, "PL", 2)
	c.LoadFirst(context.Background())
	before := c.State()

	err := c.ChooseSortStrategy(context.Background(), sorting.KeyDate, sorting.Ascending)

	require.NoError(t, err)
	assert.Len(t, fake.Calls(), 1)
	assert.Equal(t, before, c.State())
}

func TestEventsListController_ChooseDifferentStrategyReloads(t *testing.T) {
	fake := &fakeEventsAPI{pages: pagedEvents(2)}
	c := NewEventsListController(fake, "PL", 2)
	c.LoadFirst(context.Background())
	c.LoadMore(context.Background())
	require.Len(t, c.State().Events, 4)

	err := c.ChooseSortStrategy(context.Background(), sorting.KeyName, sorting.Descending)
	require.NoError(t, err)

	state := c.State()
	want := sorting.Strategy{Key: sorting.KeyName, Direction: sorting.Descending}
	assert.Equal(t, want, state.SortStrategy)
	assert.Equal(t, []string{"p0-0", "p0-1"}, ids(state.Events))
	assert.Equal(t, 0, state.CurrentPage)

	calls := fake.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, 0, calls[2].page)
	assert.Equal(t, want, calls[2].strategy)
	assert.True(t, c.IsCurrentStrategy(want))
	assert.False(t, c.IsCurrentStrategy(sorting.Default))
}

func TestEventsListController_ChooseUnsupportedStrategy(t *testing.T) {
	fake := &fakeEventsAPI{pages: pagedEvents(1)}
	c := NewEventsListController(fake, "PL", 1)

	err := c.ChooseSortStrategy(context.Background(), sorting.KeyDistance, sorting.Descending)

	assert.True(t, errors.Is(err, sorting.ErrUnsupportedStrategy))
	assert.Empty(t, fake.Calls())
	assert.True(t, c.IsCurrentStrategy(sorting.Default))
}

func TestEventsListController_ChooseWhileLoadingIsRejected(t *testing.T) {
	fake := newGatedEventsAPI(pagedEvents(1))
	c := NewEventsListController(fake, "PL", 1)

	done := make(chan struct{})
	go func() {
		c.LoadFirst(context.Background())
		close(done)
	}()
	<-fake.entered

	err := c.ChooseSortStrategy(context.Background(), sorting.KeyName, sorting.Ascending)
	assert.ErrorIs(t, err, ErrLoadInProgress)
	assert.True(t, c.IsCurrentStrategy(sorting.Default))

	err = c.ChooseCountry(context.Background(), "DE")
	assert.ErrorIs(t, err, ErrLoadInProgress)
	assert.Equal(t, "PL", c.Country())

	// choosing what is already selected is not a conflict
	assert.NoError(t, c.ChooseSortStrategy(context.Background(), sorting.Default.Key, sorting.Default.Direction))

	close(fake.gate)
	<-done
	assert.Len(t, fake.Calls(), 1)

	// once the load settles the same choice goes through
	require.NoError(t, c.ChooseSortStrategy(context.Background(), sorting.KeyName, sorting.Ascending))
	assert.True(t, c.IsCurrentStrategy(sorting.Strategy{Key: sorting.KeyName, Direction: sorting.Ascending}))
}

func TestEventsListController_ChooseAfterCloseIsNoop(t *testing.T) {
	fake := &fakeEventsAPI{pages: pagedEvents(1)}
	c := NewEventsListController(fake, "PL", 1)
	c.Close()

	assert.NoError(t, c.ChooseSortStrategy(context.Background(), sorting.KeyName, sorting.Ascending))
	assert.NoError(t, c.ChooseCountry(context.Background(), "DE"))
	assert.Empty(t, fake.Calls())
}

func TestEventsListController_ChooseCountry(t *testing.T) {
	fake := &fakeEventsAPI{pages: pagedEvents(1)}
	c := NewEventsListController(fake, "PL", 1)
	c.LoadFirst(context.Background())

	require.NoError(t, c.ChooseCountry(context.Background(), "pl"))
	assert.Len(t, fake.Calls(), 1, "same country must not reload")

	require.NoError(t, c.ChooseCountry(context.Background(), " de "))
	assert.Equal(t, "DE", c.Country())
	calls := fake.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "DE", calls[1].country)
	assert.Equal(t, 0, calls[1].page)

	err := c.ChooseCountry(context.Background(), "Germany")
	assert.True(t, errors.Is(err, ErrInvalidCountry))
	assert.Equal(t, "DE", c.Country())
}

func TestEventsListController_ToggleDisplayMode(t *testing.T) {
	fake := &fakeEventsAPI{pages: pagedEvents(1)}
	c := NewEventsListController(fake, "PL", 1)

	assert.Equal(t, DisplayModeGrid, c.ToggleDisplayMode())
	assert.Equal(t, DisplayModeGrid, c.DisplayMode())
	assert.Equal(t, DisplayModeList, c.ToggleDisplayMode())
	assert.Empty(t, fake.Calls())
}

func TestEventsListController_CloseDropsStaleResult(t *testing.T) {
	fake := newGatedEventsAPI(pagedEvents(2))
	c := NewEventsListController(fake, "PL", 2)

	var mu sync.Mutex
	notifications := 0
	c.SetObserver(func(EventsListState) {
		mu.Lock()
		notifications++
		mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		c.LoadFirst(context.Background())
		close(done)
	}()
	<-fake.entered
	c.Close()
	close(fake.gate)
	<-done

	assert.Empty(t, c.State().Events)
	mu.Lock()
	assert.Equal(t, 1, notifications, "only the loading transition is published")
	mu.Unlock()

	c.LoadFirst(context.Background())
	assert.Len(t, fake.Calls(), 1)
}

func TestEventsListController_StateIsACopy(t *testing.T) {
	c := NewEventsListController(&fakeEventsAPI{pages: pagedEvents(2)}, "PL", 2)
	c.LoadFirst(context.Background())

	state := c.State()
	state.Events[0].Name = "mutated"

	assert.NotEqual(t, "mutated", c.State().Events[0].Name)
}

func TestEventsListController_ObserverOrder(t *testing.T) {
	c := NewEventsListController(&fakeEventsAPI{pages: pagedEvents(1)}, "PL", 1)

	var seen []EventsListState
	c.SetObserver(func(s EventsListState) { seen = append(seen, s) })
	c.LoadFirst(context.Background())

	require.Len(t, seen, 2)
	assert.True(t, seen[0].IsLoading)
	assert.Empty(t, seen[0].Events)
	assert.False(t, seen[1].IsLoading)
	assert.Len(t, seen[1].Events, 1)
}

func TestEventsListState_Rows(t *testing.T) {
	c := NewEventsListController(&fakeEventsAPI{pages: pagedEvents(1)}, "PL", 1)
	c.LoadFirst(context.Background())

	rows := c.State().Rows(time.UTC)
	require.Len(t, rows, 1)
	assert.Equal(t, "p0-0", rows[0].ID)
	assert.Equal(t, "01.05.2024", rows[0].Date)
}
