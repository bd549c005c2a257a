package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skomura/medlabel/pkg/label"
	"github.com/skomura/medlabel/pkg/patients"
)

// newPatientsCmd creates the patient-record management command.
func newPatientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "patients",
		Aliases: []string{"patient"},
		Short:   "Manage the saved patient list",
	}

	cmd.AddCommand(newPatientsListCmd())
	cmd.AddCommand(newPatientsSaveCmd())
	cmd.AddCommand(newPatientsDeleteCmd())
	cmd.AddCommand(newPatientsExportCmd())
	cmd.AddCommand(newPatientsImportCmd())
	cmd.AddCommand(newPatientsPathCmd())

	return cmd
}

// newStore builds the record store honoring the config override.
func newStore() (*patients.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return patients.NewStore(cfg.RecordsPath)
}

func newPatientsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved patients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore()
			if err != nil {
				return err
			}
			records, err := store.List()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				printInfo("No saved patients")
				printDetail("File: %s", store.Path())
				return nil
			}
			for _, r := range records {
				fmt.Println(r.Label())
				if r.NameReading != "" {
					printDetail("reading: %s", r.NameReading)
				}
				if len(r.Timings) > 0 || r.CustomTiming != "" {
					t := strings.Join(r.Timings, ", ")
					if r.CustomTiming != "" {
						if t != "" {
							t += ", "
						}
						t += r.CustomTiming
					}
					printDetail("timings: %s", t)
				}
				if r.Comment != "" {
					printDetail("comment: %s", r.Comment)
				}
			}
			return nil
		},
	}
}

func newPatientsSaveCmd() *cobra.Command {
	var rec patients.Record
	var timingsStr string

	cmd := &cobra.Command{
		Use:   "save NAME",
		Short: "Save or update a patient record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec.Name = args[0]
			for _, t := range strings.Split(timingsStr, ",") {
				if t = strings.TrimSpace(t); t != "" {
					if !label.IsStandardTiming(t) {
						printWarning("%q is not a standard timing; saving anyway", t)
					}
					rec.Timings = append(rec.Timings, t)
				}
			}
			store, err := newStore()
			if err != nil {
				return err
			}
			updated, err := store.Upsert(rec)
			if err != nil {
				return err
			}
			if updated {
				printSuccess("Updated %s", rec.Name)
			} else {
				printSuccess("Saved %s", rec.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rec.NameReading, "reading", "", "name reading (kana), used for list ordering")
	cmd.Flags().StringVar(&rec.Facility, "facility", "", "facility name")
	cmd.Flags().StringVarP(&timingsStr, "timing", "t", "", "standard timings, comma-separated")
	cmd.Flags().StringVar(&rec.CustomTiming, "custom", "", "custom timing free text")
	cmd.Flags().StringVar(&rec.Comment, "comment", "", "free-form comment")

	return cmd
}

func newPatientsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a saved patient record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore()
			if err != nil {
				return err
			}
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}

func newPatientsExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Export the patient list to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore()
			if err != nil {
				return err
			}
			if err := store.Export(args[0]); err != nil {
				return err
			}
			printSuccess("Exported to %s", args[0])
			return nil
		},
	}
}

func newPatientsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the patient list with a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore()
			if err != nil {
				return err
			}
			n, err := store.Import(args[0])
			if err != nil {
				return err
			}
			printSuccess("Imported %d patients", n)
			printDetail("File: %s", store.Path())
			return nil
		},
	}
}

func newPatientsPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the patient-records file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore()
			if err != nil {
				return err
			}
			fmt.Println(store.Path())
			return nil
		},
	}
}
