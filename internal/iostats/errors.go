package iostats

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/watertrack/jjmd/pkg/errcode"
)

// QueryError happens when a read query keeps failing after the retry
// budget is spent.
func QueryError(name string, attempts int, err error) error {
	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg: fmt.Sprintf(
			"Cannot load %s after %d attempts", name, attempts),
		Err: fmt.Errorf("query %s (%d attempts): %w", name, attempts, err),
	}
}
