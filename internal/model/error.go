package model

import "errors"

var ErrorEmailTaken = errors.New("email already registered")
var ErrorInvalidVerificationToken = errors.New("invalid or expired verification token")
var ErrorAlreadyVerified = errors.New("email already verified")
var ErrorInvalidCredentials = errors.New("invalid credentials")
var ErrorAccountLocked = errors.New("account temporarily locked")
var ErrorEmailNotVerified = errors.New("email not verified")
var ErrorInvalidResetToken = errors.New("invalid or expired reset token")
var ErrorAccountNotFound = errors.New("user not found")
var ErrorSkillNotFound = errors.New("skill not found")
