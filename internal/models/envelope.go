// Package models defines data structures for brokercheck
package models

// SuccessCode is the envelope code every successful call returns.
const SuccessCode = "0"

// Envelope is the {code, message, data, meta} wrapper every FOS response uses.
type Envelope[T any] struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
	Meta    *Meta  `json:"meta,omitempty"`
}

// OK reports whether the envelope signals success.
func (e *Envelope[T]) OK() bool {
	return e.Code == SuccessCode
}

// Meta carries paging information for list endpoints.
type Meta struct {
	Total    int `json:"total"`
	Page     int `json:"page,omitempty"`
	PageSize int `json:"pageSize,omitempty"`
}

// Credentials is the SSO login body. Input only.
type Credentials struct {
	UserName  string `json:"userName"`
	Password  string `json:"password"`
	LoginType string `json:"loginType"`
	GrantType string `json:"grantType"`
}

// DateRange is an inclusive date filter in YYYYMMDD form.
type DateRange struct {
	From string
	To   string
}
