package main

import (
	"log/slog"

	"github.com/oshokin/blackboard/blackboard"
)

// Status codes returned by the setters.
const (
	statusOK       = 0
	statusRejected = -1
)

// checkedKey validates a key received from a foreign caller. A nil key stands
// for a C NULL. Invalid keys are logged and rejected; they are never
// truncated or repaired.
func checkedKey(logger *slog.Logger, op string, key *string) (string, bool) {
	if key == nil {
		logger.Error("rejected blackboard call", "op", op, "error", "NULL key")

		return "", false
	}

	if err := blackboard.ValidateKey(*key); err != nil {
		logger.Error("rejected blackboard call", "op", op, "error", err)

		return "", false
	}

	return *key, true
}

func getInt(logger *slog.Logger, key *string, def int32) int32 {
	k, ok := checkedKey(logger, "bbGetInt", key)
	if !ok {
		return def
	}

	return blackboard.GetInt(k, def)
}

func setInt(logger *slog.Logger, key *string, value int32) int {
	k, ok := checkedKey(logger, "bbSetInt", key)
	if !ok {
		return statusRejected
	}

	blackboard.SetInt(k, value)

	return statusOK
}

func getFloat(logger *slog.Logger, key *string, def float32) float32 {
	k, ok := checkedKey(logger, "bbGetFloat", key)
	if !ok {
		return def
	}

	return blackboard.GetFloat(k, def)
}

func setFloat(logger *slog.Logger, key *string, value float32) int {
	k, ok := checkedKey(logger, "bbSetFloat", key)
	if !ok {
		return statusRejected
	}

	blackboard.SetFloat(k, value)

	return statusOK
}

// getVec3Into reads the default from *x, *y, *z and writes the result back.
// Rejected keys leave the components untouched; so does a nil component.
func getVec3Into(logger *slog.Logger, key *string, x, y, z *float32) {
	if x == nil || y == nil || z == nil {
		logger.Error("rejected blackboard call", "op", "bbGetVec3", "error", "NULL component pointer")

		return
	}

	k, ok := checkedKey(logger, "bbGetVec3", key)
	if !ok {
		return
	}

	v := blackboard.GetVec3(k, blackboard.Vec3{*x, *y, *z})

	*x, *y, *z = v[0], v[1], v[2]
}

func setVec3(logger *slog.Logger, key *string, value blackboard.Vec3) int {
	k, ok := checkedKey(logger, "bbSetVec3", key)
	if !ok {
		return statusRejected
	}

	blackboard.SetVec3(k, value)

	return statusOK
}
