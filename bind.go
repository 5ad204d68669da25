package via

import (
	"mime"
	"net/url"

	"github.com/bytedance/sonic"
	"github.com/go-playground/form/v4"
	"github.com/pkg/errors"
)

var formDecoder = form.NewDecoder()

// BindJSON reads the request body and unmarshals it into obj. Decode
// failures map to 400 Bad Request; an oversized body maps to 413.
func (r *Request[T]) BindJSON(obj any) error {
	body, err := r.ReadBody()
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return BadRequest(errors.New("request body is empty"))
	}
	if err := sonic.Unmarshal(body, obj); err != nil {
		return BadRequest(err)
	}
	return nil
}

// BindForm reads a urlencoded request body and decodes it into obj.
func (r *Request[T]) BindForm(obj any) error {
	body, err := r.ReadBody()
	if err != nil {
		return err
	}
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return BadRequest(err)
	}
	if err := formDecoder.Decode(obj, values); err != nil {
		return BadRequest(err)
	}
	return nil
}

// BindQuery decodes the URI's query string into obj.
func (r *Request[T]) BindQuery(obj any) error {
	if r.url == nil {
		return BadRequest(errors.New("request has no uri"))
	}
	values, err := url.ParseQuery(r.url.RawQuery)
	if err != nil {
		return BadRequest(err)
	}
	if err := formDecoder.Decode(obj, values); err != nil {
		return BadRequest(err)
	}
	return nil
}

// Bind dispatches on the request's Content-Type header to the matching
// binder.
func (r *Request[T]) Bind(obj any) error {
	contentType := r.header.Get(HeaderContentType)
	contentType, _, _ = mime.ParseMediaType(contentType)

	switch contentType {
	case ContentTypeJSON:
		return r.BindJSON(obj)
	case ContentTypeForm:
		return r.BindForm(obj)
	default:
		return BadRequest(errors.Errorf("unsupported content type: %s", contentType))
	}
}
