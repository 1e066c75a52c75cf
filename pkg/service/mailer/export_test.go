package mailer

var BuildMessage = buildMessage
