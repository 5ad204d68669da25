package via

import (
	"io"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"
)

// Response owns a status, header map, cookie jar, and body. It is created
// by whichever middleware responds, flows back up through the chain, and
// is consumed by the host to serialize to the wire.
type Response struct {
	status  int
	proto   string
	header  http.Header
	cookies []*http.Cookie
	ext     map[any]any

	body   []byte
	stream io.Reader
}

func (r *Response) Status() int {
	return r.status
}

func (r *Response) SetStatus(status int) {
	r.status = status
}

func (r *Response) Header() http.Header {
	return r.header
}

func (r *Response) Cookies() []*http.Cookie {
	return r.cookies
}

// AddCookie appends a cookie to the response jar. The host serializes the
// jar as Set-Cookie headers.
func (r *Response) AddCookie(cookie *http.Cookie) {
	r.cookies = append(r.cookies, cookie)
}

// Body returns the buffered body, or nil when the response streams.
func (r *Response) Body() []byte {
	return r.body
}

// Stream returns the streaming body, or nil when the response is buffered.
func (r *Response) Stream() io.Reader {
	return r.stream
}

// Value reads a typed value from the response's extensions map.
func (r *Response) Value(key any) any {
	return r.ext[key]
}

// Write serializes the response onto a host ResponseWriter: headers, then
// cookies as Set-Cookie, then status, then the body.
func (r *Response) Write(w http.ResponseWriter) error {
	header := w.Header()
	for key, values := range r.header {
		for _, value := range values {
			header.Add(key, value)
		}
	}
	for _, cookie := range r.cookies {
		if v := cookie.String(); v != "" {
			header.Add(HeaderSetCookie, v)
		}
	}

	w.WriteHeader(r.status)

	if r.stream != nil {
		_, err := io.Copy(w, r.stream)
		return err
	}
	if len(r.body) > 0 {
		_, err := w.Write(r.body)
		return err
	}
	return nil
}

// Builder assembles a Response. Terminal methods (Text, HTML, JSON, Body,
// Stream, Finish) attach the body and return the finished response.
type Builder struct {
	res Response
}

// Build starts a response builder with a 200 status.
func Build() *Builder {
	return &Builder{
		res: Response{
			status: http.StatusOK,
			header: make(http.Header),
		},
	}
}

// Redirect builds a 302 Found response pointing at location.
func Redirect(location string) *Response {
	return Build().
		Status(http.StatusFound).
		Header(HeaderLocation, location).
		Finish()
}

func (b *Builder) Status(status int) *Builder {
	b.res.status = status
	return b
}

// Version records a protocol version on the response. Write does not
// send it; the host chooses the protocol on the wire.
func (b *Builder) Version(proto string) *Builder {
	b.res.proto = proto
	return b
}

func (b *Builder) Header(key, value string) *Builder {
	b.res.header.Set(key, value)
	return b
}

func (b *Builder) Cookie(cookie *http.Cookie) *Builder {
	b.res.cookies = append(b.res.cookies, cookie)
	return b
}

// Extension attaches a typed value to the response's extensions map.
func (b *Builder) Extension(key, value any) *Builder {
	if b.res.ext == nil {
		b.res.ext = make(map[any]any)
	}
	b.res.ext[key] = value
	return b
}

// Body finishes the response with a sized body. Content-Length is set;
// the content type is left to the caller.
func (b *Builder) Body(data []byte) *Response {
	b.res.body = data
	b.res.header.Set(HeaderContentLength, strconv.Itoa(len(data)))
	return &b.res
}

// Text finishes the response with a plain-text body.
func (b *Builder) Text(s string) *Response {
	b.res.header.Set(HeaderContentType, ContentTypePlain)
	return b.Body([]byte(s))
}

// HTML finishes the response with an HTML body.
func (b *Builder) HTML(s string) *Response {
	b.res.header.Set(HeaderContentType, ContentTypeHTML)
	return b.Body([]byte(s))
}

// JSON finishes the response with the JSON encoding of v.
func (b *Builder) JSON(v any) (*Response, error) {
	data, err := sonic.Marshal(v)
	if err != nil {
		return nil, InternalServerError(err)
	}
	b.res.header.Set(HeaderContentType, ContentTypeJSON)
	return b.Body(data), nil
}

// Stream finishes the response with an unsized streaming body. No
// Content-Length is set; the transfer is chunked.
func (b *Builder) Stream(r io.Reader) *Response {
	b.res.stream = r
	b.res.header.Del(HeaderContentLength)
	b.res.header.Set(HeaderTransferEncoding, "chunked")
	return &b.res
}

// Finish returns the response with an empty body.
func (b *Builder) Finish() *Response {
	return b.Body(nil)
}
