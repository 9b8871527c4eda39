package errorx

import "fmt"

// Wrap annotates err with the operation it failed in, preserving errors.Is
// and errors.As matching on the original error.
func Wrap(err error, op string) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", op, err)
}
