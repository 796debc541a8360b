package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bbzsolar/solar-roof-map/internal/dashboard"
	"github.com/bbzsolar/solar-roof-map/internal/proposal"
	"github.com/bbzsolar/solar-roof-map/pkg/format"
	"github.com/bbzsolar/solar-roof-map/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	proposalTab    string
	documentFormat string
	documentOut    string
	proposalValue  string
)

// proposalCmd groups the proposal subcommands
var proposalCmd = &cobra.Command{
	Use:   "proposal",
	Short: "List, render and send proposals",
}

var proposalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List proposals, optionally restricted to a tab",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		proposals, err := newStore().ListProposals(proposalTab)
		if err != nil {
			return fail("cmd.proposalList", err)
		}
		return output.Write(cmd.OutOrStdout(), outputFormat, proposals)
	},
}

var proposalDocumentCmd = &cobra.Command{
	Use:   "document <id>",
	Short: "Render the downloadable document of a proposal",
	Long: `Render a proposal as an HTML or plain text document.

Examples:
  solar-roof-map proposal document 1
  solar-roof-map proposal document 2 --format txt
  solar-roof-map proposal document 4 --out .`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docFormat, err := proposal.ParseFormat(documentFormat)
		if err != nil {
			return fail("cmd.proposalDocument", err)
		}

		p, err := newStore().Proposal(args[0])
		if err != nil {
			return fail("cmd.proposalDocument", err)
		}
		doc := proposal.NewDocument(p, conf.Company)

		if documentOut == "" {
			return proposal.Render(cmd.OutOrStdout(), doc, docFormat)
		}

		path := documentOut
		if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
			path = filepath.Join(path, proposal.Filename(p.ProjectName, docFormat))
		}
		if err := writeDocument(path, doc, docFormat); err != nil {
			return fail("cmd.proposalDocument", err)
		}
		logger.Info("proposal document written",
			zap.String("op", "cmd.proposalDocument"),
			zap.String("id", p.ID),
			zap.String("path", path),
		)
		return nil
	},
}

// writeDocument renders doc into a new file at path. The file is removed when
// rendering or closing fails.
func writeDocument(path string, doc proposal.Document, f proposal.Format) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := proposal.Render(file, doc, f); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

var proposalCreateCmd = &cobra.Command{
	Use:   "create <project-id>",
	Short: "Draft a proposal for a project and print its payback",
	Long: `Draft a proposal for a project. The value accepts "R$ 32.500,00",
"32.500,00" or "32500".

Examples:
  solar-roof-map proposal create 1 --value "R$ 32.500,00"
  solar-roof-map proposal create 4 --value 96400 --output-format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := format.ParseCurrency(proposalValue)
		if err != nil {
			return fail("cmd.proposalCreate", err)
		}

		p, err := newStore().NewProposalForProject(args[0], value)
		if err != nil {
			return fail("cmd.proposalCreate", err)
		}
		return output.Write(cmd.OutOrStdout(), outputFormat, []dashboard.Proposal{p})
	},
}

var proposalSendCmd = &cobra.Command{
	Use:   "send <id>",
	Short: "Send a proposal to its client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newStore().SendProposal(args[0])
		if err != nil {
			return fail("cmd.proposalSend", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Proposta para %s enviada para %s\n", p.ProjectName, p.Client)
		return nil
	},
}

func init() {
	proposalListCmd.Flags().StringVar(&proposalTab, "tab", "all", "tab: all, sent, approved, draft")
	proposalDocumentCmd.Flags().StringVar(&documentFormat, "format", string(proposal.FormatHTML), "document format: html, txt")
	proposalDocumentCmd.Flags().StringVar(&documentOut, "out", "", "file or directory to write the document to (default stdout)")

	proposalCreateCmd.Flags().StringVar(&proposalValue, "value", "", "proposal value in R$")
	_ = proposalCreateCmd.MarkFlagRequired("value")

	proposalCmd.AddCommand(proposalListCmd)
	proposalCmd.AddCommand(proposalCreateCmd)
	proposalCmd.AddCommand(proposalDocumentCmd)
	proposalCmd.AddCommand(proposalSendCmd)
}
