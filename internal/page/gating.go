package page

// Gates are the disabled flags passed to the target and flash steps.
type Gates struct {
	DriveStepDisabled bool
	FlashStepDisabled bool
}

// Gate derives step availability from a snapshot.
func Gate(s Snapshot) Gates {
	return Gates{
		DriveStepDisabled: !s.HasImage,
		FlashStepDisabled: !s.HasImage || !s.HasDrive,
	}
}
