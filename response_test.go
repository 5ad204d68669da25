package via

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBuilderText(t *testing.T) {
	res := Build().Text("hello")

	if res.Status() != http.StatusOK {
		t.Errorf("status = %d", res.Status())
	}
	if got := res.Header().Get(HeaderContentType); got != ContentTypePlain {
		t.Errorf("content type = %q", got)
	}
	if got := res.Header().Get(HeaderContentLength); got != "5" {
		t.Errorf("content length = %q", got)
	}
	if got := string(res.Body()); got != "hello" {
		t.Errorf("body = %q", got)
	}
}

func TestBuilderJSON(t *testing.T) {
	res, err := Build().Status(http.StatusCreated).JSON(map[string]int{"id": 7})
	if err != nil {
		t.Fatal(err)
	}

	if res.Status() != http.StatusCreated {
		t.Errorf("status = %d", res.Status())
	}
	if got := res.Header().Get(HeaderContentType); got != ContentTypeJSON {
		t.Errorf("content type = %q", got)
	}
	if got := string(res.Body()); got != `{"id":7}` {
		t.Errorf("body = %q", got)
	}
	if got := res.Header().Get(HeaderContentLength); got != "8" {
		t.Errorf("content length = %q", got)
	}
}

func TestBuilderJSONUnencodable(t *testing.T) {
	_, err := Build().JSON(func() {})
	if err == nil {
		t.Fatal("expected an error for an unencodable value")
	}
	if e, ok := err.(*Error); !ok || e.Status() != http.StatusInternalServerError {
		t.Errorf("err = %v, want a 500 *Error", err)
	}
}

func TestBuilderFinish(t *testing.T) {
	res := Build().Status(http.StatusNoContent).Finish()

	if res.Status() != http.StatusNoContent {
		t.Errorf("status = %d", res.Status())
	}
	if got := res.Header().Get(HeaderContentLength); got != "0" {
		t.Errorf("content length = %q", got)
	}
	if len(res.Body()) != 0 {
		t.Errorf("body = %q", res.Body())
	}
}

func TestBuilderStreamOmitsContentLength(t *testing.T) {
	res := Build().Stream(strings.NewReader("a stream of bytes"))

	if got := res.Header().Get(HeaderContentLength); got != "" {
		t.Errorf("content length = %q, want unset", got)
	}
	if got := res.Header().Get(HeaderTransferEncoding); got != "chunked" {
		t.Errorf("transfer encoding = %q", got)
	}
	if res.Body() != nil {
		t.Error("buffered body should be nil for streams")
	}

	w := httptest.NewRecorder()
	if err := res.Write(w); err != nil {
		t.Fatal(err)
	}
	if got := w.Body.String(); got != "a stream of bytes" {
		t.Errorf("written body = %q", got)
	}
}

func TestResponseWriteSetsCookies(t *testing.T) {
	res := Build().
		Cookie(&http.Cookie{Name: "a", Value: "1"}).
		Cookie(&http.Cookie{Name: "b", Value: "2"}).
		Finish()

	w := httptest.NewRecorder()
	if err := res.Write(w); err != nil {
		t.Fatal(err)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 2 || cookies[0].Name != "a" || cookies[1].Name != "b" {
		t.Errorf("cookies = %+v", cookies)
	}
}

func TestRedirect(t *testing.T) {
	res := Redirect("/login")

	if res.Status() != http.StatusFound {
		t.Errorf("status = %d", res.Status())
	}
	if got := res.Header().Get(HeaderLocation); got != "/login" {
		t.Errorf("location = %q", got)
	}
}
