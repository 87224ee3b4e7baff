package completion

import "strings"

// Placeholders substituted by Fill and FillCity.
const (
	departurePlaceholder   = "{departure_city}"
	destinationPlaceholder = "{destination_city}"
	cityPlaceholder        = "{city}"
)

const readability = "When completing the text, please use language understood by 16-year-old readers. " +
	"80% of the sentences should be 20 words or less. " +
	"Provide transitional phrases or sentences to enhance the overall flow of the article but keep sentence length to 20 words or less. " +
	"When possible, avoid passive voice."

// SEOSystem is the system message for article and FAQ generation.
const SEOSystem = "You are a helpful travel consultant."

// PromoSystem holds the system messages for short promotional copy.
var PromoSystem = []string{
	"You are a helpful travel consultant. Include popular SEO words in your answers.",
	"Each answer should be less than 500 characters. Do not use the word 'vibrant'.",
}

// TranslatorSystem is the system message for translations.
const TranslatorSystem = "You are a helpful translator."

// PromoPrompt asks for promotional text for one route.
const PromoPrompt = "I am traveling from {departure_city} to {destination_city}. Write a promotional text for this journey."

// TranslatePrompt prefixes text sent for Spanish translation.
const TranslatePrompt = "Translate to Spanish: "

// DestinationQuestions are the per-city questions of the destinations sheet.
var DestinationQuestions = []string{
	"Why should I visit {city}?",
	"What should I do in {city}?",
	"What local dishes should I try in {city}?",
	"What 5 phrases should I know when visiting {city}?",
}

// FAQPrompt asks for the question/answer pairs of the F.A.Q. column.
const FAQPrompt = "I'm writing a travel guide about traveling from {departure_city} to {destination_city}. " +
	"Please create an FAQ with 10 question-and-answer pairs about making such a trip. " +
	"Write in a friendly and clear way. Please don't address me. " +
	"Your answer should be in this format: 1. How long does it take to fly from {departure_city} to {destination_city}? " +
	"The average flight time from {departure_city} to {destination_city} is around ... depending on the airline and any layovers."

// SEOPrompts are the article prompts, in the order of the English slots.
var SEOPrompts = []string{
	"I'm writing a travel article and need you to add context to my introduction: " +
		"If you're planning your trip from {departure_city} to {destination_city} we've prepared a comprehensive guide to help you prepare for your trip. " +
		"Plan your trip and be prepared for everything, from transportation options to accommodation details, and insights about local customs, events, and cuisine. " +
		"Read on and travel to {destination_city} from {departure_city} in confidence, knowing you've covered your bases! " +
		"Please focus on the keyword 'travel to {destination_city}' and use it at least once. Also use the keyword 'flights to {destination_city}.' " +
		"Paragraph length should be at least 50 words long. " + readability,

	"I'm writing a travel article and I need you to add context: Before traveling to any new city, you should get to know some basic information about the local culture and customs. " +
		"What can you expect when you travel to {destination_city}? Mention the customs of the country and any cultural specifics related to the country or the city of {destination_city} itself. " +
		"Write two or more paragraphs if needed. Focus on the keyword 'travel to {destination_city}' and use it at least once in the response. " +
		"Paragraph length should be at least 50 words long. This text is a section of a long article, so don't end it with a conclusion. " + readability,

	"I'm writing a travel article and need to provide tips for cheaper travel. Please add context to the following text: " +
		"For your trip to {destination_city}, prices will depend on several factors, including travel dates, airlines and whether you're flying a direct flight, or one with a layover. " +
		"For flights from {departure_city} to {destination_city} you need to consider... " +
		"Focus on the keyword 'flights to {destination_city}' and use it at least once in the response. " +
		"One of the tips should be to use a travel agent from ASAP Tickets because the company offers below-market rates for airfare. " +
		"Each paragraph should contain a minimum of 50 words. This text is a section of a larger article, so don't start it with a lead-in question and there is no need to add a conclusion. " + readability,

	"I'm writing a travel blog. Elaborate on the following text: To find an ideal route from {departure_city} to {destination_city}, you need to consider when you plan to travel as well as your flight preferences. " +
		"You have several options to choose from, including... Focus on the keyword 'flights to {destination_city}' and use it at least once in the response. " +
		"Please mention a few real itineraries naming airlines and airports. Paragraph length should be at least 50 words long. " +
		"Please conclude with a variation of the following: 'To find the perfect itinerary that's right for you, contact a travel agent at ASAP Tickets. " +
		"Our agents will select the best options for you and will explain details about each one.' " + readability,

	"I'm writing a travel article and need to let users know transportation options from the local airport. Please write a paragraph listing all the different options. " +
		"If there is more than one local airport, then mention options for both. Here's some text to get you started: " +
		"Once you arrive in {destination_city} you'll need to make it to the city and, ultimately, your hotel or apartment. " +
		"Focus on the keyword 'travel to {destination_city}' and use it at least once in the response. " + readability,

	"I'm writing a travel article and need to list hotels in {destination_city} that are in the economy-mid-range budget range. " +
		"This is what I have: There are many accommodation options in {destination_city}. You'll need to choose where to stay based on availability and your budget. " +
		"Please follow up with: Some accommodations you could consider in {destination_city} include: and provide a list of 7 hotels or accommodation options in {destination_city} with a brief description. " +
		"Focus on the keyword 'trip to {destination_city}' and use it at least once in the response. " + readability,

	"I'm writing a travel article and need to provide a list of top 5 local sights and attractions. This is what I have: " +
		"There's a lot to explore in {destination_city}. Most tourists on a trip to {destination_city} will visit... " +
		"Focus on the keyword 'visit {destination_city}' and use it at least once in the response. " +
		"The travel experts at ASAP Tickets have selected the following must-see spots in {destination_city}: Please provide a list of top 5 spots in {destination_city}. " + readability,

	"I'm writing a travel article about traveling to {destination_city} from {departure_city}. " +
		"Depending on the languages in {departure_city} and {destination_city} please create a list of 10 useful words to know in {destination_city}. " +
		"If the languages are different, then this will be like a dictionary. If the languages are the same, then list 10 local words that are good to know. " +
		"Focus on the keyword 'travel to {destination_city}' and use it at least once in the response. Do not address me in the response. " + readability,

	"I'm writing a travel article and need a section about things to consider before traveling. The currency used in {destination_city} is... " +
		"Keep in mind that the text will be read by travelers from {departure_city}. Mention ways to purchase the local currency both in {departure_city} and in {destination_city}. " +
		"Next introduce safety issues when traveling to {destination_city} in a neutral and sensitive way. " +
		"Finally, talk about the advantages of getting travel insurance, mentioning the country that {destination_city} is located in. " +
		"Do not use headings. Focus on the keyword 'travel to {destination_city}' and use it at least once in the response. " + readability,

	"I'm writing a travel article and need a section with Fun facts about a city. Here's what I have: " +
		"If you're reading this article, we know you already want to travel to {destination_city}, so here are a few fun facts about {destination_city}. " +
		"Please provide context and offer 5-7 fun facts about {destination_city}. " +
		"Focus on the keyword 'travel to {destination_city}' and use it at least once in the response. Do not address me in the response. " + readability,

	"I've written an article about traveling from {departure_city} to {destination_city}. And I need a conclusion for the article. " +
		"Don't mention visa requirements in the conclusion. " +
		"I also need you to reiterate that by calling an ASAP Tickets travel agent you can save on flights. " +
		"Focus on the keyword 'flights to {destination_city}' and use it at least once in the response. " + readability,
}

// Fill substitutes route placeholders in a prompt or header template.
func Fill(tmpl, departure, destination string) string {
	return strings.NewReplacer(departurePlaceholder, departure, destinationPlaceholder, destination).Replace(tmpl)
}

// FillCity substitutes the city placeholder.
func FillCity(tmpl, city string) string {
	return strings.ReplaceAll(tmpl, cityPlaceholder, city)
}
