package main

import "fmt"

type DoctorCommand struct{}

func (c *DoctorCommand) Name() string {
	return "doctor"
}

func (c *DoctorCommand) Description() string {
	return "Diagnose environment issues (deps + db)"
}

func (c *DoctorCommand) Run(args []string) error {
	PrintHeader("Running Doctor...")

	hasError := false

	depsCmd := &CheckDepsCommand{}
	if err := depsCmd.Run(nil); err != nil {
		PrintError("Dependencies check failed: %v", err)
		hasError = true
	} else {
		PrintSuccess("Dependencies OK")
	}

	if getEnv("STORAGE_DRIVER", "file") != "postgres" {
		PrintInfo("File storage configured, skipping database check")
		return finish(hasError)
	}

	dbCmd := &CheckDBCommand{}
	if err := dbCmd.Run(nil); err != nil {
		PrintError("Database check failed: %v", err)
		hasError = true
	} else {
		PrintSuccess("Database OK")
	}

	return finish(hasError)
}

func finish(hasError bool) error {
	if hasError {
		return fmt.Errorf("doctor found issues")
	}
	PrintSuccess("All systems operational!")
	return nil
}
