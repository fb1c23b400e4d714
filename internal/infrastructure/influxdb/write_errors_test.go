package influxdb

import (
	"errors"
	"testing"
)

func TestHandleWriteErrorsWrapsFailure(t *testing.T) {
	var got []error
	c := &Client{}
	c.SetOnError(func(err error) { got = append(got, err) })

	cause := errors.New("bucket not found")
	ch := make(chan error, 1)
	ch <- cause
	close(ch)
	c.handleWriteErrors(ch)

	if len(got) != 1 {
		t.Fatalf("callback called %d times, want 1", len(got))
	}
	if !errors.Is(got[0], ErrWriteFailed) || !errors.Is(got[0], cause) {
		t.Errorf("error = %v, want ErrWriteFailed wrapping the cause", got[0])
	}
}

func TestHandleWriteErrorsWithoutCallback(t *testing.T) {
	ch := make(chan error, 1)
	ch <- errors.New("dropped")
	close(ch)
	(&Client{}).handleWriteErrors(ch)
}
