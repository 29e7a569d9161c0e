package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
)

type RequestOptions struct {
	headers map[string]string
}

type RequestArgs struct {
	Router http.Handler
	Method string
	URL    string
	Body   io.Reader
}

// MakeRequest выполняет запрос к роутеру через httptest и возвращает ответ.
func MakeRequest(args RequestArgs, opts ...func(*RequestOptions)) *http.Response {
	options := RequestOptions{
		headers: make(map[string]string),
	}
	for _, opt := range opts {
		opt(&options)
	}

	request := httptest.NewRequest(args.Method, args.URL, args.Body)
	for k, v := range options.headers {
		request.Header.Set(k, v)
	}

	recorder := httptest.NewRecorder()
	args.Router.ServeHTTP(recorder, request)

	return recorder.Result()
}

// JSONBody сериализует v в тело запроса.
func JSONBody(v any) (io.Reader, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %s", err.Error())
	}
	return bytes.NewReader(body), nil
}

// DecodeJSON читает и закрывает тело ответа.
func DecodeJSON(res *http.Response, v any) error {
	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response body: %s", err.Error())
	}
	return nil
}

func WithHeader(name, value string) func(*RequestOptions) {
	return func(fn *RequestOptions) {
		fn.headers[name] = value
	}
}

func WithJSON() func(*RequestOptions) {
	return WithHeader("Content-Type", "application/json")
}
