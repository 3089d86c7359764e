package domain

// StoreError represents an error from the knowledge store layer.
type StoreError struct {
	Op  string
	Err string
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err
}

// ProviderError represents an error from the search provider layer.
type ProviderError struct {
	Op  string
	Err string
}

func (e *ProviderError) Error() string {
	return e.Op + ": " + e.Err
}

// DriverError represents an error from the driver layer.
type DriverError struct {
	Op  string
	Err string
}

func (e *DriverError) Error() string {
	return e.Op + ": " + e.Err
}
