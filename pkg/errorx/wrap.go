package errorx

import "fmt"

// Wrap annotates err with the operation that produced it while keeping the
// underlying *I18nError reachable for errors.As / IsCode checks.
func Wrap(err error, op string) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", op, err)
}
