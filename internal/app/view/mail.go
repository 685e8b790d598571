package view

import (
	"bytes"
	"html/template"
	"strings"
)

// OTPMailData fills the verification code email.
type OTPMailData struct {
	Code          string
	ExpiryMinutes int
}

// ContactMailData fills the contact form notification.
type ContactMailData struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Message string
}

var otpMailTmpl = template.Must(template.New("otp_mail").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<h2 style="color: #7c3aed;">Email Verification</h2>
	<p>Your OTP for email verification is:</p>
	<div style="background: #f3f4f6; padding: 20px; text-align: center; font-size: 32px; font-weight: bold; letter-spacing: 5px; color: #7c3aed;">
		{{.Code}}
	</div>
	<p style="color: #666; margin-top: 20px;">This OTP will expire in {{.ExpiryMinutes}} minutes.</p>
	<p style="color: #666;">If you didn't request this, please ignore this email.</p>
</div>
`))

var contactMailTmpl = template.Must(template.New("contact_mail").Funcs(template.FuncMap{
	"lines": func(s string) []string { return strings.Split(s, "\n") },
}).Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f9f9f9;">
	<div style="background-color: white; padding: 30px; border-radius: 10px;">
		<h2 style="color: #333; border-bottom: 2px solid #007bff; padding-bottom: 10px;">New Contact Form Submission</h2>
		<p><strong>Name:</strong> {{.Name}}</p>
		<p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
		{{if .Phone}}<p><strong>Phone:</strong> <a href="tel:{{.Phone}}">{{.Phone}}</a></p>{{end}}
		{{if .Company}}<p><strong>Company:</strong> {{.Company}}</p>{{end}}
		<div style="margin-top: 20px;">
			<strong>Message:</strong>
			<div style="margin-top: 10px; padding: 15px; background-color: #f8f9fa; border-left: 4px solid #007bff;">
				{{range $i, $line := lines .Message}}{{if $i}}<br>{{end}}{{$line}}{{end}}
			</div>
		</div>
		<p style="margin-top: 30px; color: #666; font-size: 12px; text-align: center;">Sent from Clooyzi Contact Form</p>
	</div>
</div>
`))

// RenderOTPMail expands the verification code template.
func RenderOTPMail(data OTPMailData) (string, error) {
	return render(otpMailTmpl, data)
}

// RenderContactMail expands the contact notification template. User input is HTML-escaped.
func RenderContactMail(data ContactMailData) (string, error) {
	return render(contactMailTmpl, data)
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
