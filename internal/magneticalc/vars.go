package magneticalc

var (
	Debug   = false // set to true for verbose debug output
	NoAccel = false // set to true to force the reference reduction strategy

	// Compile time checks to ensure that the reduction strategy interface
	// is implemented by all required types
	_ ReductionStrategy = (*referenceStrategy)(nil)
	_ ReductionStrategy = (*batchedStrategy)(nil)
)
