package httpapi

import (
	"io"
	"math"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-loans-go/calendar"
	"github.com/AntonStoeckl/library-loans-go/circulation/core"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxBodyBytes = 64 << 10

const (
	actionReturn     = "return"
	actionRenew      = "renew"
	actionReschedule = "reschedule"
)

const (
	failureReasonMalformedBody = "request body must be a JSON object"
	failureReasonInvalidID     = "id must be a UUID"
	failureReasonInvalidDate   = "dates must be formatted YYYY-MM-DD"
	failureReasonInvalidDays   = "days must be an integer"
	failureReasonInvalidAction = "action must be one of return, renew, reschedule"
	failureReasonNoChange      = "either action or status is required"
	failureReasonInvalidField  = "field has the wrong type"
)

type startLoanRequest struct {
	UserID uuid.UUID
	BookID uuid.UUID
	DueOn  calendar.Date
}

// updateLoanRequest is the decoded PATCH body. Action wins over Status when both are sent.
type updateLoanRequest struct {
	Action   string
	Days     int
	HasDays  bool
	NewDueOn calendar.Date
	Status   string
}

func readObject(body io.Reader) (jsoniter.Any, error) {
	data, err := io.ReadAll(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return nil, core.InvalidArgument(failureReasonMalformedBody)
	}

	if !json.Valid(data) {
		return nil, core.InvalidArgument(failureReasonMalformedBody)
	}

	root := json.Get(data)
	if root.ValueType() != jsoniter.ObjectValue {
		return nil, core.InvalidArgument(failureReasonMalformedBody)
	}

	return root, nil
}

// optionalString returns "" for a missing or null field and rejects non-string values.
func optionalString(root jsoniter.Any, key string) (string, error) {
	field := root.Get(key)

	switch field.ValueType() {
	case jsoniter.InvalidValue, jsoniter.NilValue:
		return "", nil
	case jsoniter.StringValue:
		return field.ToString(), nil
	default:
		return "", core.InvalidArgument(key + ": " + failureReasonInvalidField)
	}
}

func optionalDate(root jsoniter.Any, key string) (calendar.Date, error) {
	raw, err := optionalString(root, key)
	if err != nil || raw == "" {
		return calendar.Date{}, err
	}

	date, err := calendar.ParseDate(raw)
	if err != nil {
		return calendar.Date{}, core.InvalidArgument(key + ": " + failureReasonInvalidDate)
	}

	return date, nil
}

func requiredID(root jsoniter.Any, key string) (uuid.UUID, error) {
	raw, err := optionalString(root, key)
	if err != nil {
		return uuid.Nil, err
	}

	return parseID(raw)
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, core.InvalidArgument(failureReasonInvalidID)
	}

	return id, nil
}

// optionalID treats an empty query parameter as "no filter".
func optionalID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, nil
	}

	return parseID(raw)
}

func decodeStartLoan(body io.Reader) (startLoanRequest, error) {
	root, err := readObject(body)
	if err != nil {
		return startLoanRequest{}, err
	}

	req := startLoanRequest{}

	if req.UserID, err = requiredID(root, "user_id"); err != nil {
		return startLoanRequest{}, err
	}

	if req.BookID, err = requiredID(root, "book_id"); err != nil {
		return startLoanRequest{}, err
	}

	// a missing due date is passed on as zero and rejected by the engine after the lookups
	if req.DueOn, err = optionalDate(root, "due_on"); err != nil {
		return startLoanRequest{}, err
	}

	return req, nil
}

func decodeUpdateLoan(body io.Reader) (updateLoanRequest, error) {
	root, err := readObject(body)
	if err != nil {
		return updateLoanRequest{}, err
	}

	req := updateLoanRequest{}

	if req.Action, err = optionalString(root, "action"); err != nil {
		return updateLoanRequest{}, err
	}

	if req.Status, err = optionalString(root, "status"); err != nil {
		return updateLoanRequest{}, err
	}

	switch req.Action {
	case "":
		if req.Status == "" {
			return updateLoanRequest{}, core.InvalidArgument(failureReasonNoChange)
		}
	case actionReturn:
	case actionRenew:
		if req.Days, req.HasDays, err = optionalDays(root); err != nil {
			return updateLoanRequest{}, err
		}
	case actionReschedule:
		if req.NewDueOn, err = optionalDate(root, "new_due_on"); err != nil {
			return updateLoanRequest{}, err
		}
	default:
		return updateLoanRequest{}, core.InvalidArgument(failureReasonInvalidAction)
	}

	return req, nil
}

// optionalDays accepts integral JSON numbers only, so 2.5 and "3" are rejected here.
// The positivity check is left to the engine.
func optionalDays(root jsoniter.Any) (int, bool, error) {
	field := root.Get("days")

	switch field.ValueType() {
	case jsoniter.InvalidValue, jsoniter.NilValue:
		return 0, false, nil
	case jsoniter.NumberValue:
	default:
		return 0, false, core.InvalidArgument(failureReasonInvalidDays)
	}

	days := field.ToFloat64()
	if days != math.Trunc(days) || math.Abs(days) > math.MaxInt32 {
		return 0, false, core.InvalidArgument(failureReasonInvalidDays)
	}

	return int(days), true, nil
}
