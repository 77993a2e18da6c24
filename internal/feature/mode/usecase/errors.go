package usecase

import "errors"

// ErrRealModeUnavailable は準備が整っていない状態でREALモードへの切り替えが要求された場合に返されます。
var ErrRealModeUnavailable = errors.New("real mode is not configured")
