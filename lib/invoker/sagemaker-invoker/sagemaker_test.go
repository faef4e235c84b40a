package sagemaker_invoker

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openmed/species-detect/lib"
)

type mockRuntime struct {
	mock.Mock
}

func (m *mockRuntime) InvokeEndpoint(ctx context.Context, params *sagemakerruntime.InvokeEndpointInput, optFns ...func(*sagemakerruntime.Options)) (*sagemakerruntime.InvokeEndpointOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sagemakerruntime.InvokeEndpointOutput), args.Error(1)
}

type sagemakerInvokerSuite struct {
	suite.Suite
}

func TestSagemakerInvokerSuite(t *testing.T) {
	suite.Run(t, new(sagemakerInvokerSuite))
}

func (s *sagemakerInvokerSuite) TestInvoke() {
	mockClient := &mockRuntime{}
	mockClient.On("InvokeEndpoint", mock.Anything, mock.AnythingOfType("*sagemakerruntime.InvokeEndpointInput")).
		Run(func(args mock.Arguments) {
			input := args.Get(1).(*sagemakerruntime.InvokeEndpointInput)
			s.Equal("species-detection-endpoint", aws.ToString(input.EndpointName))
			s.Equal("application/json", aws.ToString(input.ContentType))
			s.JSONEq(`{"inputs":"H. pylori detected in biopsy"}`, string(input.Body))
		}).
		Return(&sagemakerruntime.InvokeEndpointOutput{
			Body: []byte(`[{"word":"H. pylori","score":0.88,"start":0,"end":9}]`),
		}, nil).
		Once()

	testInvoker := &sagemakerInvoker{
		endpointName: "species-detection-endpoint",
		runtime:      mockClient,
	}

	entities, err := testInvoker.Invoke(context.Background(), "H. pylori detected in biopsy")
	s.Require().NoError(err)
	s.Equal([]lib.Entity{{Word: "H. pylori", Score: 0.88, Start: 0, End: 9}}, entities)
	mockClient.AssertExpectations(s.T())
}

func (s *sagemakerInvokerSuite) TestInvokeEndpointError() {
	mockClient := &mockRuntime{}
	mockClient.On("InvokeEndpoint", mock.Anything, mock.Anything).
		Return(nil, errors.New("ModelError: received server error (500)")).
		Once()

	testInvoker := &sagemakerInvoker{
		endpointName: "species-detection-endpoint",
		runtime:      mockClient,
	}

	entities, err := testInvoker.Invoke(context.Background(), "some text")
	s.Nil(entities)
	s.Require().Error(err)
	s.Contains(err.Error(), "ModelError")
}

func (s *sagemakerInvokerSuite) TestInvokeBadResponse() {
	mockClient := &mockRuntime{}
	mockClient.On("InvokeEndpoint", mock.Anything, mock.Anything).
		Return(&sagemakerruntime.InvokeEndpointOutput{Body: []byte(`{"error":"nope"}`)}, nil).
		Once()

	testInvoker := &sagemakerInvoker{
		endpointName: "species-detection-endpoint",
		runtime:      mockClient,
	}

	entities, err := testInvoker.Invoke(context.Background(), "some text")
	s.Nil(entities)
	s.Error(err)
}
