package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

// ErrInvalid wraps every error returned by Decode.
var ErrInvalid = errors.New("invalid punch")

// errTrailingData reports content after the first JSON value.
var errTrailingData = errors.New("unexpected data after JSON value")

// BindAndValidate binds JSON body into `out` and runs validation.
// An undecodable body gets a 400, a shape violation a 422; in both cases the
// response is already written and the handler should return.
func BindAndValidate(c *gin.Context, out interface{}, v *validatorv10.Validate) error {
	body, err := c.GetRawData()
	if err == nil {
		err = decodeJSON(body, out)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid_request_body",
			"msg":   err.Error(),
		})
		return err
	}

	if err := v.Struct(out); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation_failed",
			"fields": validationErrorsToMap(err),
		})
		return err
	}
	return nil
}

// Decode parses and validates a raw punch payload outside of an HTTP request,
// e.g. a queue message body.
func Decode(body []byte, v *validatorv10.Validate) (RecordPunchRequest, error) {
	var req RecordPunchRequest
	if err := decodeJSON(body, &req); err != nil {
		return req, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := v.Struct(req); err != nil {
		return req, fmt.Errorf("%w: %v", ErrInvalid, validationErrorsToMap(err))
	}
	return req, nil
}

func validationErrorsToMap(err error) map[string]string {
	out := map[string]string{}
	var ve validatorv10.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fe.Field()] = fe.Tag()
		}
	} else {
		out["error"] = err.Error()
	}
	return out
}

// decodeJSON requires body to hold exactly one JSON value.
func decodeJSON(body []byte, out interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(out); err != nil {
		return err
	}
	if err := dec.Decode(&json.RawMessage{}); err != io.EOF {
		return errTrailingData
	}
	return nil
}
