package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"
)

func newLambdaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "Run as an API Gateway Lambda function",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLambda(cmd.Context())
		},
	}
}

func runLambda(ctx context.Context) error {
	h, _, err := buildHandler(ctx)
	if err != nil {
		return err
	}
	lambda.Start(h.Handle)
	return nil
}
