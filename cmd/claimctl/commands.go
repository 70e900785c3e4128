package main

import (
	"github.com/spf13/cobra"

	"insuro/internal/services/assessment"
)

var assessFields assessment.ClaimFields

var assessCmd = &cobra.Command{
	Use:   "assess <claim-id>",
	Short: "Run the assessment pass on a claim",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var fields *assessment.ClaimFields
		if assessFields != (assessment.ClaimFields{}) {
			fields = &assessFields
		}
		result, err := deps.Assessment.Assess(cmd.Context(), args[0], fields)
		if err != nil {
			return err
		}
		return printJSON(cmd, result)
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify <claim-id>",
	Short: "Run the verification pass on a claim",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		verdict, err := deps.Assessment.Verify(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, verdict)
	},
}

var fraudReviewCmd = &cobra.Command{
	Use:   "fraud-review [claim-id...]",
	Short: "Rescore claims for fraud; with no ids every open claim is reviewed",
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := deps.Review.RunFraudReview(cmd.Context(), args)
		if err != nil {
			return err
		}
		return printJSON(cmd, report)
	},
}

func init() {
	f := assessCmd.Flags()
	f.StringVar(&assessFields.ClaimType, "type", "", "override the claim type")
	f.StringVar(&assessFields.Description, "description", "", "override the description")
	f.StringVar(&assessFields.VehicleMake, "make", "", "override the vehicle make")
	f.StringVar(&assessFields.VehicleModel, "model", "", "override the vehicle model")
	f.StringVar(&assessFields.IncidentLocation, "location", "", "override the incident location")
}
