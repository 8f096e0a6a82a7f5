// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"strings"

	"github.com/getemall/getemall/internal/platform/validate"
	"github.com/getemall/getemall/pkg/pointer"
)

// Extension field bounds.
const (
	MaxProfilePicLen = 128
	MaxFullNameLen   = 128
	MaxBioLen        = 256
)

/*
ValidateExt checks the extension fields and returns one message per violated
rule, in the order picture, full name, public email, bio. An empty result
means the extension is valid.
*/
func ValidateExt(ext ProfileExt) []string {
	v := (&validate.Validator{}).
		MaxLen(FieldProfilePic, "Profile pic name", pointer.Val(ext.ProfilePic), MaxProfilePicLen).
		MaxLen(FieldFullName, "Name", pointer.Val(ext.FullName), MaxFullNameLen)
	if ext.PubEmail != nil {
		v.Email(FieldPubEmail, *ext.PubEmail)
	}
	v.MaxLen(FieldBio, "Bio", pointer.Val(ext.Bio), MaxBioLen)

	return v.Messages()
}

// JoinViolations renders the messages of [ValidateExt] as one client message.
func JoinViolations(messages []string) string {
	var builder strings.Builder
	builder.WriteString("Some errors were found:\n")
	for _, message := range messages {
		builder.WriteString("- ")
		builder.WriteString(message)
		builder.WriteString("\n")
	}
	builder.WriteString("Please fix them and try again.")
	return builder.String()
}
