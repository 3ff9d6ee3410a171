package main

import (
	"aiupstart.com/shadergen/internal/agent"
	"aiupstart.com/shadergen/internal/model"
	"github.com/spf13/cobra"
)

func newChatCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Describe effects interactively, one per line",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			shaderAgent, err := a.newAgent(cmd.Context())
			if err != nil {
				return err
			}
			user := agent.NewUserProxyAgent("User", cmd.InOrStdin(), cmd.OutOrStdout())

			toAgent := make(chan model.Message)
			toUser := make(chan model.Message)
			shaderAgent.StartContext(cmd.Context(), toAgent, toUser)
			user.Start(toUser, nil)

			err = user.UserInputLoop(cmd.Context(), toAgent)
			user.Wait()
			return err
		}),
	}
}
