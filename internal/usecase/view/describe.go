package view

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/hadithview/internal/domain"
)

// DescribeFailure builds a Describer whose messages start with "<action> failed".
// notFound, when non-empty, replaces the message for missing entities.
func DescribeFailure(action, notFound string) Describer {
	return func(err error) string {
		switch domain.KindOf(err) {
		case domain.KindNotFound:
			if notFound != "" {
				return notFound
			}
			return action + " failed: not found."
		case domain.KindRequest:
			var re *domain.RequestError
			if errors.As(err, &re) {
				msg := fmt.Sprintf("%s failed: server returned %d %s", action, re.StatusCode, re.Status)
				if re.Detail != "" {
					msg += " (" + re.Detail + ")"
				}
				return msg + "."
			}
		case domain.KindTransport:
			return action + " failed: the server could not be reached."
		case domain.KindDecode:
			return action + " failed: unexpected response from the server."
		}
		return action + " failed."
	}
}
