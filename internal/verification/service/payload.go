package service

import (
	"strconv"
	"strings"

	pkgerrors "github.com/btx638/policr-mini/pkg/errors"
)

// payloadVersionV1 is the only callback payload version this dispatcher
// understands: "v1:<chosenIndex>:<verificationID>". The routing namespace is
// stripped upstream before the payload reaches us.
const payloadVersionV1 = "v1"

// answer is a parsed callback payload.
type answer struct {
	Chosen         int
	VerificationID int64
}

// parsePayload dispatches on the version tag. Unknown versions, wrong arity
// and non-numeric arguments are all fatal; there is no silent fallback.
func parsePayload(payload string) (answer, error) {
	parts := strings.Split(payload, ":")
	switch parts[0] {
	case payloadVersionV1:
		if len(parts) != 3 {
			return answer{}, pkgerrors.Newf(pkgerrors.CodeBadPayload,
				"v1 payload expects 2 args, got %d", len(parts)-1)
		}
		chosen, err := strconv.Atoi(parts[1])
		if err != nil {
			return answer{}, pkgerrors.Newf(pkgerrors.CodeBadPayload,
				"chosen index %q is not an integer", parts[1])
		}
		verificationID, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return answer{}, pkgerrors.Newf(pkgerrors.CodeBadPayload,
				"verification id %q is not an integer", parts[2])
		}
		return answer{Chosen: chosen, VerificationID: verificationID}, nil
	default:
		return answer{}, pkgerrors.Newf(pkgerrors.CodeBadPayload,
			"unknown payload version %q", parts[0])
	}
}
