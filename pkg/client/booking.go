package client

import (
	"fmt"
	"net/http"
	"net/url"

	"pawbook/pkg/lifecycle"
	"pawbook/pkg/model"
)

// BookingClient is a typed wrapper over the bookings service API. The web
// client and the integration tests are its callers; it never retries a
// failed mutation on its own.
type BookingClient struct {
	http *HttpClient
}

func NewBookingClient(baseURL, token string) *BookingClient {
	return &BookingClient{http: NewHttpClient(baseURL).WithToken(token)}
}

type bookingEnvelope struct {
	Data model.Booking `json:"data"`
}

type bookingListEnvelope struct {
	Data       []model.Booking `json:"data"`
	TotalCount int64           `json:"total_count"`
}

func (c *BookingClient) Create(booking *model.Booking) (*model.Booking, error) {
	resp, err := c.http.POST("/api/v1/bookings", booking)
	if err != nil {
		return nil, err
	}
	return decodeBooking(resp, http.StatusCreated)
}

func (c *BookingClient) Get(id string) (*model.Booking, error) {
	resp, err := c.http.GET("/api/v1/bookings/id/" + url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return decodeBooking(resp, http.StatusOK)
}

func (c *BookingClient) List(shopID, customerID string, status lifecycle.Status, limit int, offset int64) ([]model.Booking, int64, error) {
	q := url.Values{}
	if shopID != "" {
		q.Set("shop_id", shopID)
	}
	if customerID != "" {
		q.Set("customer_id", customerID)
	}
	if status != "" {
		q.Set("status", string(status))
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	resp, err := c.http.GET("/api/v1/bookings?" + q.Encode())
	if err != nil {
		return nil, 0, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("list bookings failed (%d): %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var envelope bookingListEnvelope
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, 0, fmt.Errorf("failed to decode booking list: %w", err)
	}
	return envelope.Data, envelope.TotalCount, nil
}

func (c *BookingClient) Transition(id string, target lifecycle.Status) (*model.Booking, error) {
	resp, err := c.http.POST("/api/v1/bookings/id/"+url.PathEscape(id)+"/transition", model.TransitionRequest{
		TargetStatus: string(target),
	})
	if err != nil {
		return nil, err
	}
	return decodeBooking(resp, http.StatusOK)
}

func (c *BookingClient) AssignTechnician(id, technicianID string) (*model.Booking, error) {
	resp, err := c.http.POST("/api/v1/bookings/id/"+url.PathEscape(id)+"/assign", model.AssignRequest{
		TechnicianID: technicianID,
	})
	if err != nil {
		return nil, err
	}
	return decodeBooking(resp, http.StatusOK)
}

func (c *BookingClient) ConfirmPayment(id string) (*model.Booking, error) {
	resp, err := c.http.POST("/api/v1/bookings/id/"+url.PathEscape(id)+"/confirm-payment", nil)
	if err != nil {
		return nil, err
	}
	return decodeBooking(resp, http.StatusOK)
}

func (c *BookingClient) UpdateLineItems(id string, items []model.LineItem) (*model.Booking, error) {
	resp, err := c.http.PATCH("/api/v1/bookings/id/"+url.PathEscape(id)+"/line-items", model.LineItemsUpdate{
		LineItems: items,
	})
	if err != nil {
		return nil, err
	}
	return decodeBooking(resp, http.StatusOK)
}

func decodeBooking(resp *Response, wantStatus int) (*model.Booking, error) {
	if resp.StatusCode != wantStatus {
		return nil, fmt.Errorf("booking request failed (%d): %s", resp.StatusCode, GetErrorMessage(resp))
	}
	var envelope bookingEnvelope
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode booking: %w", err)
	}
	return &envelope.Data, nil
}
