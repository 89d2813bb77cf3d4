package hackcheck

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// validate checks both decoded payloads and caller-supplied options. The
// json tag name is used in error paths so they match the wire format.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("searchfield", func(fl validator.FieldLevel) bool {
		return SearchField(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("filtermode", func(fl validator.FieldLevel) bool {
		return SearchFilter(fl.Field().String()).Valid()
	})

	return v
}

// Wire representations. Required keys are pointers so a missing or null key
// can be told apart from a zero value.

type sourceWire struct {
	Name *string `json:"name" validate:"required"`
	Date *string `json:"date" validate:"required"`
}

type searchResultWire struct {
	Email       *string     `json:"email" validate:"required"`
	Password    *string     `json:"password" validate:"required"`
	Username    *string     `json:"username" validate:"required"`
	FullName    *string     `json:"full_name" validate:"required"`
	IPAddress   *string     `json:"ip_address" validate:"required"`
	PhoneNumber *string     `json:"phone_number" validate:"required"`
	Hash        *string     `json:"hash" validate:"required"`
	Source      *sourceWire `json:"source" validate:"required"`
}

type paginationDataWire struct {
	Offset *int `json:"offset" validate:"required"`
	Limit  *int `json:"limit" validate:"required"`
}

type searchResponsePaginationWire struct {
	DocumentCount *int                `json:"document_count" validate:"required"`
	Next          *paginationDataWire `json:"next"`
	Prev          *paginationDataWire `json:"prev"`
}

type searchResponseWire struct {
	Databases  *int                          `json:"databases" validate:"required"`
	Results    []searchResultWire            `json:"results" validate:"required,dive"`
	Pagination *searchResponsePaginationWire `json:"pagination"`
	FirstSeen  *string                       `json:"first_seen" validate:"required"`
	LastSeen   *string                       `json:"last_seen" validate:"required"`
}

type checkResponseWire struct {
	Found *bool `json:"found" validate:"required"`
}

type assetMonitorWire struct {
	ID                *string        `json:"id" validate:"required"`
	Status            *MonitorStatus `json:"status" validate:"required,oneof=0 1 2"`
	Type              *SearchField   `json:"type" validate:"required,searchfield"`
	Asset             *string        `json:"asset" validate:"required"`
	NotificationEmail *string        `json:"notification_email" validate:"required"`
	ExpiresSoon       *bool          `json:"expires_soon" validate:"required"`
	CreatedAt         *time.Time     `json:"created_at" validate:"required"`
	EndsAt            *time.Time     `json:"ends_at" validate:"required"`
}

type domainMonitorWire struct {
	ID                *string        `json:"id" validate:"required"`
	Status            *MonitorStatus `json:"status" validate:"required,oneof=0 1 2"`
	Domain            *string        `json:"domain" validate:"required"`
	NotificationEmail *string        `json:"notification_email" validate:"required"`
	ExpiresSoon       *bool          `json:"expires_soon" validate:"required"`
	CreatedAt         *time.Time     `json:"created_at" validate:"required"`
	EndsAt            *time.Time     `json:"ends_at" validate:"required"`
}

type getMonitorsResponseWire struct {
	AssetMonitors  []assetMonitorWire  `json:"asset_monitors" validate:"required,dive"`
	DomainMonitors []domainMonitorWire `json:"domain_monitors" validate:"required,dive"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// decodeInto unmarshals body into wire and checks required keys and enum
// values. Any failure is reported as a *SchemaError.
func decodeInto(body []byte, wire any) error {
	if err := json.Unmarshal(body, wire); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &SchemaError{Field: typeErr.Field, Err: err}
		}
		return &SchemaError{Err: err}
	}

	if err := validate.Struct(wire); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &SchemaError{
				Field: fieldPath(fe.Namespace()),
				Err:   fmt.Errorf("failed %q check", fe.Tag()),
			}
		}
		return &SchemaError{Err: err}
	}

	return nil
}

// fieldPath drops the wire struct name from a validator namespace
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// validateOptions rejects request parameters the service would never accept
func validateOptions(opts any) error {
	err := validate.Struct(opts)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Errors: []string{err.Error()}}
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("%s failed %q", fieldPath(fe.Namespace()), fe.Tag())
		if fe.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", fe.Param())
		}
		msg += fmt.Sprintf(", actual: '%v'", fe.Value())
		messages = append(messages, msg)
	}
	return &ValidationError{Errors: messages}
}

func (w *sourceWire) value() Source {
	return Source{Name: *w.Name, Date: *w.Date}
}

func (w *searchResultWire) value() SearchResult {
	return SearchResult{
		Email:       *w.Email,
		Password:    *w.Password,
		Username:    *w.Username,
		FullName:    *w.FullName,
		IPAddress:   *w.IPAddress,
		PhoneNumber: *w.PhoneNumber,
		Hash:        *w.Hash,
		Source:      w.Source.value(),
	}
}

func (w *paginationDataWire) value() *PaginationData {
	if w == nil {
		return nil
	}
	return &PaginationData{Offset: *w.Offset, Limit: *w.Limit}
}

func (w *searchResponsePaginationWire) value() *SearchResponsePagination {
	if w == nil {
		return nil
	}
	return &SearchResponsePagination{
		DocumentCount: *w.DocumentCount,
		Next:          w.Next.value(),
		Prev:          w.Prev.value(),
	}
}

func (w *searchResponseWire) value() *SearchResponse {
	results := make([]SearchResult, 0, len(w.Results))
	for i := range w.Results {
		results = append(results, w.Results[i].value())
	}
	return &SearchResponse{
		Databases:  *w.Databases,
		Results:    results,
		Pagination: w.Pagination.value(),
		FirstSeen:  *w.FirstSeen,
		LastSeen:   *w.LastSeen,
	}
}

func (w *assetMonitorWire) value() AssetMonitor {
	return AssetMonitor{
		ID:                *w.ID,
		Status:            *w.Status,
		Type:              *w.Type,
		Asset:             *w.Asset,
		NotificationEmail: *w.NotificationEmail,
		ExpiresSoon:       *w.ExpiresSoon,
		CreatedAt:         *w.CreatedAt,
		EndsAt:            *w.EndsAt,
	}
}

func (w *domainMonitorWire) value() DomainMonitor {
	return DomainMonitor{
		ID:                *w.ID,
		Status:            *w.Status,
		Domain:            *w.Domain,
		NotificationEmail: *w.NotificationEmail,
		ExpiresSoon:       *w.ExpiresSoon,
		CreatedAt:         *w.CreatedAt,
		EndsAt:            *w.EndsAt,
	}
}

func (w *getMonitorsResponseWire) value() *GetMonitorsResponse {
	assets := make([]AssetMonitor, 0, len(w.AssetMonitors))
	for i := range w.AssetMonitors {
		assets = append(assets, w.AssetMonitors[i].value())
	}
	domains := make([]DomainMonitor, 0, len(w.DomainMonitors))
	for i := range w.DomainMonitors {
		domains = append(domains, w.DomainMonitors[i].value())
	}
	return &GetMonitorsResponse{
		AssetMonitors:  assets,
		DomainMonitors: domains,
	}
}

// DecodeSearchResponse decodes a /search payload
func DecodeSearchResponse(body []byte) (*SearchResponse, error) {
	var wire searchResponseWire
	if err := decodeInto(body, &wire); err != nil {
		return nil, err
	}
	return wire.value(), nil
}

// DecodeCheckResponse decodes a /check payload
func DecodeCheckResponse(body []byte) (*CheckResponse, error) {
	var wire checkResponseWire
	if err := decodeInto(body, &wire); err != nil {
		return nil, err
	}
	return &CheckResponse{Found: *wire.Found}, nil
}

// DecodeGetMonitorsResponse decodes a /monitors payload
func DecodeGetMonitorsResponse(body []byte) (*GetMonitorsResponse, error) {
	var wire getMonitorsResponseWire
	if err := decodeInto(body, &wire); err != nil {
		return nil, err
	}
	return wire.value(), nil
}

// DecodeAssetMonitor decodes a single asset monitor payload
func DecodeAssetMonitor(body []byte) (*AssetMonitor, error) {
	var wire assetMonitorWire
	if err := decodeInto(body, &wire); err != nil {
		return nil, err
	}
	m := wire.value()
	return &m, nil
}

// DecodeDomainMonitor decodes a single domain monitor payload
func DecodeDomainMonitor(body []byte) (*DomainMonitor, error) {
	var wire domainMonitorWire
	if err := decodeInto(body, &wire); err != nil {
		return nil, err
	}
	m := wire.value()
	return &m, nil
}
