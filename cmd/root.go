package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chat-agent",
		Short:         "Chat with LLM agents that can search the web",
		SilenceUsage:  true,
		SilenceErrors: true,
		// A bare invocation is what the Lambda runtime performs.
		RunE: func(cmd *cobra.Command, _ []string) error {
			if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
				return runLambda(cmd.Context())
			}
			return runServe(cmd.Context(), "")
		},
	}
	root.CompletionOptions.HiddenDefaultCmd = true

	root.AddCommand(newServeCmd())
	root.AddCommand(newLambdaCmd())
	root.AddCommand(newAskCmd())
	return root
}
