package di

import (
	"errors"
	"reflect"
	"testing"

	"github.com/GoArmGo/TasksAPI/internal/logger"
)

func TestResourcesCloseAllInReverseOrder(t *testing.T) {
	var closed []string
	closer := func(name string, err error) func() error {
		return func() error {
			closed = append(closed, name)
			return err
		}
	}

	var opened resources
	opened.add("storage", closer("storage", nil))
	opened.add("rabbitmq", closer("rabbitmq", errors.New("connection reset")))
	opened.closeAll(logger.Discard())

	if want := []string{"rabbitmq", "storage"}; !reflect.DeepEqual(closed, want) {
		t.Fatalf("closed = %v, want %v", closed, want)
	}

	// повторный вызов ничего не закрывает второй раз
	opened.closeAll(logger.Discard())
	if len(closed) != 2 {
		t.Fatalf("closed %d resources after second closeAll, want 2", len(closed))
	}
}
