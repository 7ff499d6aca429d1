package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"communityaid/internal/domain"
	"communityaid/internal/payment"
)

// looseString accepts a JSON string or number.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return domain.Invalid("", "expected a string or number")
	}
	*s = looseString(n.String())
	return nil
}

type mpesaRequest struct {
	Amount    looseString `json:"amount"`
	Phone     looseString `json:"phone"`
	ProjectID looseString `json:"projectId"`
}

func wholeNumber(field string, raw looseString) (int64, error) {
	v := strings.TrimSpace(string(raw))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err == nil {
		return n, nil
	}
	f, ferr := strconv.ParseFloat(v, 64)
	if ferr != nil || f != float64(int64(f)) {
		return 0, domain.Invalid(field, "must be a whole number")
	}
	return int64(f), nil
}

// DonateMpesa starts an STK push and answers with the gateway's body as is.
func (a *App) DonateMpesa(w http.ResponseWriter, r *http.Request) {
	actor, err := a.actor(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var req mpesaRequest
	if err := a.decode(w, r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	amount, err := wholeNumber("amount", req.Amount)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	projectID, err := wholeNumber("projectId", req.ProjectID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	res, err := a.Payments.Initiate(r.Context(), actor, payment.Request{
		Amount:    amount,
		Phone:     strings.TrimSpace(string(req.Phone)),
		ProjectID: projectID,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Body)
}
