package enrich

import "context"

// maxAttempts bounds how often a stage re-asks the model after a malformed
// response before giving up.
const maxAttempts = 5

// retry runs fn up to attempts times. It returns nil on the first success,
// immediately on an error retryable reports false for, and the last error
// once the attempt budget is exhausted. Context cancellation stops further
// attempts.
func retry(ctx context.Context, attempts int, retryable func(error) bool, fn func(context.Context) error) error {
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = fn(ctx)
		if err == nil || !retryable(err) {
			return err
		}
	}
	return err
}
