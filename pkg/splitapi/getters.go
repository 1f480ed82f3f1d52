package splitapi

// Getters are nil-safe so callers holding a message of unknown type can read
// the identifiers through small interfaces.

func (r *GetSessionRequest) GetSessionID() string {
	if r == nil {
		return ""
	}
	return r.SessionID
}

func (r *SetBillTotalRequest) GetSessionID() string {
	if r == nil {
		return ""
	}
	return r.SessionID
}

func (r *SetTipPercentageRequest) GetSessionID() string {
	if r == nil {
		return ""
	}
	return r.SessionID
}

func (r *AddParticipantRequest) GetSessionID() string {
	if r == nil {
		return ""
	}
	return r.SessionID
}

func (r *RenameParticipantRequest) GetSessionID() string {
	if r == nil {
		return ""
	}
	return r.SessionID
}

func (r *RenameParticipantRequest) GetParticipantID() string {
	if r == nil {
		return ""
	}
	return r.ParticipantID
}

func (r *LockAmountRequest) GetSessionID() string {
	if r == nil {
		return ""
	}
	return r.SessionID
}

func (r *LockAmountRequest) GetParticipantID() string {
	if r == nil {
		return ""
	}
	return r.ParticipantID
}

func (r *RemoveParticipantRequest) GetSessionID() string {
	if r == nil {
		return ""
	}
	return r.SessionID
}

func (r *RemoveParticipantRequest) GetParticipantID() string {
	if r == nil {
		return ""
	}
	return r.ParticipantID
}

func (r *DeleteSessionRequest) GetSessionID() string {
	if r == nil {
		return ""
	}
	return r.SessionID
}

// GetSessionID returns the ID of the session in the response, which is how
// CreateSession reports the session it made.
func (r *SessionResponse) GetSessionID() string {
	if r == nil || r.Session == nil {
		return ""
	}
	return r.Session.ID
}

func (r *SessionResponse) GetResult() *Result {
	if r == nil {
		return nil
	}
	return r.Result
}

func (r *CalculateSplitResponse) GetResult() *Result {
	if r == nil {
		return nil
	}
	return r.Result
}
