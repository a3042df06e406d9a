package ticketmaster

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"evently/api"
	"evently/api/apikey"
	"evently/models"
	"evently/models/sorting"
)

// TicketmasterApiClient embeds the common HTTPClient
type TicketmasterApiClient struct {
	*api.HTTPClient
	keyProvider apikey.APIKeyProvider
}

// NewTicketmasterApiClient creates a new instance of TicketmasterApiClient
func NewTicketmasterApiClient(httpClient *api.HTTPClient, keyProvider apikey.APIKeyProvider) *TicketmasterApiClient {
	return &TicketmasterApiClient{
		HTTPClient:  httpClient,
		keyProvider: keyProvider,
	}
}

// FetchEvents retrieves one page of events in the order the server returns them.
func (c *TicketmasterApiClient) FetchEvents(ctx context.Context, country string, page, size int, strategy sorting.Strategy) ([]models.Event, error) {
	if page < 0 || size <= 0 {
		return nil, fmt.Errorf("%w: page %d size %d", api.ErrInvalidURL, page, size)
	}

	query, err := c.baseQuery(EventsEndpoint)
	if err != nil {
		return nil, err
	}
	query.Set(CountryCodeParam, country)
	query.Set(PageParam, strconv.Itoa(page))
	query.Set(SizeParam, strconv.Itoa(size))
	query.Set(SortParam, strategy.String())

	var response models.EventsResponse
	if err := c.Get(ctx, EventsEndpoint, query, &response); err != nil {
		return nil, err
	}

	// The API omits "_embedded" entirely once a page runs past the last event.
	if response.Embedded == nil {
		if response.Page != nil {
			return []models.Event{}, nil
		}
		return nil, fmt.Errorf("%w: events response has neither _embedded nor page", api.ErrDecoding)
	}

	for _, e := range response.Embedded.Events {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", api.ErrDecoding, err)
		}
	}
	return response.Embedded.Events, nil
}

// FetchEventDetails retrieves a single event given its id
func (c *TicketmasterApiClient) FetchEventDetails(ctx context.Context, eventID string) (*models.EventDetails, error) {
	if eventID == "" {
		return nil, fmt.Errorf("%w: empty event id", api.ErrInvalidURL)
	}
	endpoint := EventDetailsEndpoint(url.PathEscape(eventID))

	query, err := c.baseQuery(endpoint)
	if err != nil {
		return nil, err
	}

	var response models.EventDetails
	if err := c.Get(ctx, endpoint, query, &response); err != nil {
		return nil, err
	}
	if err := response.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", api.ErrDecoding, err)
	}
	return &response, nil
}

// baseQuery checks the endpoint can be addressed and attaches the API key.
func (c *TicketmasterApiClient) baseQuery(endpoint string) (url.Values, error) {
	if _, err := c.BuildURL(endpoint, nil); err != nil {
		return nil, err
	}

	key, ok := c.keyProvider.APIKey()
	if !ok {
		return nil, api.ErrMissingAPIKey
	}
	return url.Values{api.APIKeyParam: {key}}, nil
}
