package sagemaker_invoker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"

	"github.com/openmed/species-detect/lib"
	"github.com/openmed/species-detect/lib/invoker"
)

// Runtime is the part of the SageMaker runtime client we use.
type Runtime interface {
	InvokeEndpoint(ctx context.Context, params *sagemakerruntime.InvokeEndpointInput, optFns ...func(*sagemakerruntime.Options)) (*sagemakerruntime.InvokeEndpointOutput, error)
}

// New returns a Client backed by a deployed SageMaker endpoint. Credentials
// come from the SDK's default chain.
func New(ctx context.Context, endpointName, region string) (invoker.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &sagemakerInvoker{
		endpointName: endpointName,
		runtime:      sagemakerruntime.NewFromConfig(cfg),
	}, nil
}

type sagemakerInvoker struct {
	endpointName string
	runtime      Runtime
}

func (s *sagemakerInvoker) Invoke(ctx context.Context, text string) ([]lib.Entity, error) {
	body, err := json.Marshal(invoker.Payload{Inputs: text})
	if err != nil {
		return nil, err
	}

	out, err := s.runtime.InvokeEndpoint(ctx, &sagemakerruntime.InvokeEndpointInput{
		EndpointName: aws.String(s.endpointName),
		ContentType:  aws.String("application/json"),
		Body:         body,
	})
	if err != nil {
		return nil, err
	}

	return invoker.DecodeEntities(out.Body)
}
