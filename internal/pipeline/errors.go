package pipeline

// FetchError reports a failure obtaining source media. Its message
// carries the fetch tool's diagnostic output.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// TranscodeError reports a failure trimming or encoding the clip. Its
// message carries the transcode tool's diagnostic output.
type TranscodeError struct {
	Err error
}

func (e *TranscodeError) Error() string {
	return e.Err.Error()
}

func (e *TranscodeError) Unwrap() error {
	return e.Err
}
