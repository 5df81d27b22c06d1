package grpc

import (
	"git.solsynth.dev/hypernet/scribe/pkg/internal/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps a service error to the status reported to callers.
func toStatus(operation string, err error) error {
	switch services.Kind(err) {
	case services.KindAlreadyExists:
		return status.Error(codes.AlreadyExists, err.Error())
	case services.KindNotFound:
		return status.Error(codes.NotFound, err.Error())
	case services.KindInvalidInput:
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Errorf(codes.Internal, "%s failed: %v", operation, err)
	}
}
