package http

import (
	"github.com/go-resty/resty/v2"
)

type Route struct {
	Method string
	URL    string
}

func (r Route) Send(req *resty.Request) (*resty.Response, error) {
	return req.Execute(r.Method, r.URL)
}

func (r Route) String() string {
	return r.Method + " " + r.URL
}
