package business

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrorInitializationFail = status.Error(codes.Internal, "Internal configuration is invalid")

	ErrorInvalidAmount = status.Error(codes.InvalidArgument, "Amount is missing or negative")

	ErrorInvalidSettlement = status.Error(codes.InvalidArgument, "Settlement event is missing required fields")

	ErrorInvalidRate = status.Error(codes.InvalidArgument, "Commission rate is invalid")

	ErrorInvalidShareConfig = status.Error(codes.InvalidArgument, "Revenue share percentages are invalid")

	ErrorTransactionAlreadyDistributed = status.Error(codes.AlreadyExists, "Specified transaction has already been distributed")

	ErrorBeneficiaryResolution = status.Error(codes.FailedPrecondition, "A required beneficiary role could not be resolved")

	ErrorRevenueAlreadyProcessed = status.Error(codes.FailedPrecondition, "Specified pending revenue has already been processed")

	ErrorRevenueDoesNotExist = status.Error(codes.NotFound, "Specified pending revenue does not exist")

	ErrorInsufficientPending = status.Error(codes.FailedPrecondition, "Account pending balance is smaller than the requested amount")

	ErrorInsufficientBalance = status.Error(codes.FailedPrecondition, "Account available balance is smaller than the requested amount")
)
